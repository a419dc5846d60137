// The MIT License (MIT)
//
// Copyright (c) 2026 The Marlow Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package util

import "testing"

func TestAddEdgeDeduplicates(t *testing.T) {
	g := NewGraph(3)
	if !g.AddEdge(0, 1) {
		t.Fatal("first insertion must report a new edge")
	}
	if g.AddEdge(0, 1) {
		t.Fatal("second insertion must report a duplicate")
	}
	if len(g.Succs(0)) != 1 {
		t.Fatalf("duplicate edge was stored: %v", g.Succs(0))
	}
	if !g.HasEdge(0, 1) || g.HasEdge(1, 0) {
		t.Fatal("edges must be directed")
	}
}

func TestSuccsFollowInsertionOrder(t *testing.T) {
	g := NewGraph(3)
	g.AddEdge(0, 2)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)

	succs := g.Succs(0)
	if len(succs) != 2 || succs[0] != 2 || succs[1] != 1 {
		t.Fatalf("Succs(0) = %v, want [2 1]", succs)
	}
	if len(g.Succs(1)) != 0 {
		t.Fatalf("Succs(1) = %v, want empty", g.Succs(1))
	}
}
