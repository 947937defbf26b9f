// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import "fmt"

// Stream is a named bounded FIFO between exactly one producer and one
// consumer stage. Push blocks while the stream is full and Pop blocks while
// it is empty.
type Stream[T any] struct {
	name string
	c    chan T
}

// NewStream returns an empty stream holding up to depth values.
func NewStream[T any](name string, depth int) *Stream[T] {
	if depth <= 0 {
		panic(fmt.Sprintf("matmul: stream %q depth must be positive, got %d", name, depth))
	}
	return &Stream[T]{name: name, c: make(chan T, depth)}
}

// Push appends v, blocking while the stream is full.
func (s *Stream[T]) Push(v T) {
	s.c <- v
}

// Pop removes and returns the oldest value, blocking while the stream is
// empty.
func (s *Stream[T]) Pop() T {
	return <-s.c
}

// Name returns the stream name.
func (s *Stream[T]) Name() string {
	return s.name
}

// Len returns the number of values currently queued.
func (s *Stream[T]) Len() int {
	return len(s.c)
}

// Cap returns the stream depth.
func (s *Stream[T]) Cap() int {
	return cap(s.c)
}
