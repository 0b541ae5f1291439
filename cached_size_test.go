// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package steit_test

import (
	"context"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/nhatquangsin/steit"
	"github.com/nhatquangsin/steit/internal/testutil"
)

func TestCachedSize(t *testing.T) {
	t.Parallel()

	cachedSize := steit.NewCachedSize()
	testutil.ExpectEq(t, uint32(0), cachedSize.Get())

	cachedSize.Set(1337)
	testutil.ExpectEq(t, uint32(1337), cachedSize.Get())

	var zero steit.CachedSize
	testutil.ExpectEq(t, uint32(0), zero.Get())
}

func TestCachedSize_BackAndForth(t *testing.T) {
	t.Parallel()

	for _, value := range []uint32{0, 1, 1337, 1_000_000_007} {
		cachedSize := steit.NewCachedSize()
		cachedSize.Set(value)
		testutil.ExpectEq(t, value, cachedSize.Get())
	}
}

func TestCachedSize_Equal(t *testing.T) {
	t.Parallel()

	a := steit.NewCachedSize()
	b := steit.NewCachedSize()
	a.Set(1)
	b.Set(2)
	testutil.ExpectTrue(t, a.Equal(b))
	testutil.ExpectTrue(t, b.Equal(a))
}

func TestCachedSize_Clone(t *testing.T) {
	t.Parallel()

	original := steit.NewCachedSize()
	original.Set(10)

	clone := original.Clone()
	testutil.ExpectEq(t, uint32(10), clone.Get())

	clone.Set(20)
	testutil.ExpectEq(t, uint32(10), original.Get())
	testutil.ExpectEq(t, uint32(20), clone.Get())
}

func TestCachedSize_Concurrent(t *testing.T) {
	t.Parallel()

	cachedSize := steit.NewCachedSize()
	g, _ := errgroup.WithContext(context.Background())
	for ii := uint32(1); ii <= 16; ii++ {
		g.Go(func() error {
			for jj := 0; jj < 100; jj++ {
				cachedSize.Set(ii)
				_ = cachedSize.Get()
			}
			return nil
		})
	}
	testutil.AssertNoError(t, g.Wait())

	got := cachedSize.Get()
	testutil.ExpectTrue(t, got >= 1 && got <= 16)
}
