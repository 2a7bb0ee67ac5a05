// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice adds the generic helpers the standard [slices] package lacks.
*/
package slice

// Map transforms every element of input.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter keeps the elements for which keep returns true.
func Filter[T any](input []T, keep func(T) bool) []T {
	var result []T
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

// KeySet collects the non-empty keys produced by keys for every element.
func KeySet[T any](input []T, keys func(T) []string) map[string]struct{} {
	set := make(map[string]struct{}, len(input))
	for _, v := range input {
		for _, key := range keys(v) {
			if key != "" {
				set[key] = struct{}{}
			}
		}
	}
	return set
}
