// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer converts between values and the pointers used for optional
fields in request payloads and storage filters.
*/
package pointer

// To returns a pointer to a copy of v.
//
//	filter := book.Filter{Year: pointer.To(1899)}
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value of T when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
