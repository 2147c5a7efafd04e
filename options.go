package pagestream

import (
	"fmt"

	"github.com/tsawler/pagestream/core"
)

// options holds configuration for content loading.
type options struct {
	resolver core.ReferenceResolver
}

// Option configures content loading.
type Option func(*options)

// WithResolver supplies the resolver used to follow indirect references
// to content stream parts. Content given as direct stream objects needs
// none.
//
// Example:
//
//	r := resolver.NewResolver(reader)
//	content, err := pagestream.ContentFromObject(obj, pagestream.WithResolver(r))
func WithResolver(r core.ReferenceResolver) Option {
	return func(o *options) { o.resolver = r }
}

// buildOptions applies opts over the defaults.
func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// resolve follows one indirect reference.
func (o options) resolve(ref core.IndirectRef) (core.Object, error) {
	if o.resolver == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoResolver, ref)
	}
	obj, err := o.resolver.ResolveReference(ref)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", ref, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("resolving %s: no object", ref)
	}
	return obj, nil
}
