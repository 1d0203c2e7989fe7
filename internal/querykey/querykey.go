// Package querykey builds the cache keys used by the query layer.
//
// Keys are ordered tuples, widest scope first, so invalidating a prefix
// invalidates everything beneath it: ("contracts") covers every contract list,
// page and detail.
package querykey

import (
	"net/url"
	"sort"
	"strings"
)

// Domains with cached queries.
const (
	Clients        = "clients"
	Products       = "products"
	Stock          = "stock"
	Services       = "services"
	Offices        = "offices"
	Localities     = "localities"
	Suppliers      = "suppliers"
	Purchases      = "purchases"
	Contracts      = "contracts"
	SupplierOrders = "supplier-orders"
	InternalOrders = "internal-orders"
)

// Separator joins the encoded parts of a key.
const Separator = "\x1f"

// Key is a cache key.
type Key []string

// String returns the canonical encoding of the key. Equal keys encode equally.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, Separator)
}

// HasPrefix reports whether prefix covers k.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, p := range prefix {
		if k[i] != p {
			return false
		}
	}
	return true
}

// Covers reports whether the encoded key s falls under the encoded prefix.
func Covers(prefix, s string) bool {
	return s == prefix || strings.HasPrefix(s, prefix+Separator)
}

// Equal reports whether both keys have the same parts.
func (k Key) Equal(other Key) bool {
	return len(k) == len(other) && k.HasPrefix(other)
}

// Append returns a new key extended with parts.
func (k Key) Append(parts ...string) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, parts...)
}

// Filters are query parameters that select a slice of a list.
type Filters map[string]string

// Encode serializes the filters deterministically. Empty values are dropped,
// so a filter that was cleared maps to the same key as one never set.
func (f Filters) Encode() string {
	if len(f) == 0 {
		return ""
	}
	names := make([]string, 0, len(f))
	for name, v := range f {
		if v != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f[name]))
	}
	return b.String()
}

// Builder produces the keys of one domain.
type Builder struct {
	domain string
}

// Domain returns the key builder for a domain.
func Domain(name string) Builder {
	return Builder{domain: name}
}

// All covers every query of the domain.
func (b Builder) All() Key {
	return Key{b.domain}
}

// Lists covers every list query of the domain.
func (b Builder) Lists() Key {
	return Key{b.domain, "list"}
}

// List is a plain list with optional filters.
func (b Builder) List(filters Filters) Key {
	return withFilters(b.Lists(), filters)
}

// Paginated covers every paginated list of the domain.
func (b Builder) Paginated() Key {
	return b.Lists().Append("paginated")
}

// PaginatedWith is a paginated list for one set of filters. The page itself
// is part of filters, so every page is cached on its own.
func (b Builder) PaginatedWith(filters Filters) Key {
	return withFilters(b.Paginated(), filters)
}

// Details covers every detail query of the domain.
func (b Builder) Details() Key {
	return Key{b.domain, "detail"}
}

// Detail is one entity.
func (b Builder) Detail(id string) Key {
	return b.Details().Append(id)
}

// Sub is a domain specific query such as a product's stock for a range.
func (b Builder) Sub(parts ...string) Key {
	return b.All().Append(parts...)
}

// PaginatedListKey returns the paginated key builder for a domain.
func PaginatedListKey(domain string) func(Filters) Key {
	return Domain(domain).PaginatedWith
}

func withFilters(base Key, filters Filters) Key {
	if enc := filters.Encode(); enc != "" {
		return base.Append(enc)
	}
	return base
}
