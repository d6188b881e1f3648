// Package fieldarray holds the editing primitives shared by every ordered child list of a draft:
// steps, questions, options, variants, tags, keywords and key points.
//
// Lists are kept in storage order. Elements that implement Positioned get their position rewritten
// to their index after every mutation, and elements that implement Keyed receive a fresh identity
// key when they enter a list.
package fieldarray

import (
	"errors"

	"github.com/google/uuid"
)

var ErrIndexOutOfRange = errors.New("fieldarray: index out of range")

// Keyed is implemented by pointer receivers of elements carrying a render identity key.
type Keyed interface {
	SetKey(key string)
}

// Positioned is implemented by pointer receivers of elements carrying an explicit position.
type Positioned interface {
	SetPosition(position int)
}

// Append adds item at the end. No validation is performed on item.
func Append[T any](list []T, item T) []T {
	assignKey(&item)
	list = append(list, item)
	Reindex(list)
	return list
}

// Insert places item at index, shifting later elements. index may equal len(list).
func Insert[T any](list []T, index int, item T) ([]T, error) {
	if index < 0 || index > len(list) {
		return list, ErrIndexOutOfRange
	}
	assignKey(&item)

	inserted := make([]T, 0, len(list)+1)
	inserted = append(inserted, list[:index]...)
	inserted = append(inserted, item)
	inserted = append(inserted, list[index:]...)
	Reindex(inserted)
	return inserted, nil
}

// Remove drops the element at index. The input slice is left untouched.
func Remove[T any](list []T, index int) ([]T, error) {
	if index < 0 || index >= len(list) {
		return list, ErrIndexOutOfRange
	}

	remaining := make([]T, 0, len(list)-1)
	remaining = append(remaining, list[:index]...)
	remaining = append(remaining, list[index+1:]...)
	Reindex(remaining)
	return remaining, nil
}

// Move relocates the element at from so that it ends up at to, in place.
func Move[T any](list []T, from, to int) error {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	item := list[from]
	if from < to {
		copy(list[from:to], list[from+1:to+1])
	} else {
		copy(list[to+1:from+1], list[to:from])
	}
	list[to] = item
	Reindex(list)
	return nil
}

// Replace overwrites the element at index with item under a fresh identity key.
func Replace[T any](list []T, index int, item T) error {
	if index < 0 || index >= len(list) {
		return ErrIndexOutOfRange
	}
	assignKey(&item)
	list[index] = item
	Reindex(list)
	return nil
}

// Reindex rewrites every position to its index.
func Reindex[T any](list []T) {
	for i := range list {
		if positioned, ok := any(&list[i]).(Positioned); ok {
			positioned.SetPosition(i)
		}
	}
}

func CanMoveUp(index int) bool {
	return index > 0
}

func CanMoveDown(length, index int) bool {
	return index >= 0 && index < length-1
}

func assignKey[T any](item *T) {
	if keyed, ok := any(item).(Keyed); ok {
		keyed.SetKey(uuid.NewString())
	}
}
