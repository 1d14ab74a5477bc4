// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package ctxr provides typed accessors for values stored in a context.
package ctxr

import (
	"context"
)

type (
	// ContextSetter returns a new context holding a value.
	ContextSetter[T any] func(context.Context, T) context.Context
	// ContextChecker retrieves a value from a context. The boolean is false
	// when the value is missing or of another type.
	ContextChecker[T any] func(context.Context) (T, bool)
)

// Setter returns a [ContextSetter] for a key.
func Setter[T any](key any) ContextSetter[T] {
	return func(ctx context.Context, val T) context.Context {
		return context.WithValue(ctx, key, val)
	}
}

// Checker returns a [ContextChecker] for a key.
func Checker[T any](key any) ContextChecker[T] {
	return func(ctx context.Context) (T, bool) {
		v, ok := ctx.Value(key).(T)
		return v, ok
	}
}

// WithChecker returns a [ContextSetter] and a [ContextChecker] sharing
// the same key.
func WithChecker[T any](key any) (ContextSetter[T], ContextChecker[T]) {
	return Setter[T](key), Checker[T](key)
}
