// Package resolver provides PDF indirect reference resolution.
//
// PDF objects refer to each other with indirect references ("5 0 R"); a
// content stream's Length, its resources, and the streams making up a
// multi-part content array are all commonly indirect. This package follows
// those references over an ObjectReader capability, detecting circular
// chains rather than looping forever.
//
// ObjectResolver satisfies core.ReferenceResolver, so it plugs directly
// into core.Parser.SetReferenceResolver and into the content-stream entry
// points that accept a resolver.
//
// # Basic Usage
//
// Create a resolver with an object reader and resolve references:
//
//	resolver := resolver.NewResolver(reader)
//	obj, err := resolver.Resolve(ref)
//
// # Deep Resolution
//
// For complete expansion of nested references in dictionaries and arrays:
//
//	resolved, err := resolver.ResolveDeep(obj)
//
// This recursively resolves all indirect references within the object tree.
//
// # Cycle Detection
//
// The resolver automatically detects circular references and returns an
// error rather than entering an infinite loop. The maximum recursion depth
// is configurable:
//
//	resolver := resolver.NewResolver(reader, resolver.WithMaxDepth(50))
//
// # Convenience Methods
//
// Several convenience methods simplify common operations:
//   - ResolveDict: Resolve a dictionary and all its values
//   - ResolveArray: Resolve an array and all its elements
//   - GetObjectResolved: Load and resolve an object by number
package resolver
