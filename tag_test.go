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
	"math"
	"testing"

	"github.com/nhatquangsin/steit"
	"github.com/nhatquangsin/steit/internal/testutil"
)

func TestValidateTag(t *testing.T) {
	t.Parallel()

	testutil.AssertError(t, steit.ValidateTag(0))
	testutil.ExpectNoError(t, steit.ValidateTag(1))
	testutil.ExpectNoError(t, steit.ValidateTag(1337))
	testutil.ExpectNoError(t, steit.ValidateTag(steit.MaxTag))
	testutil.AssertError(t, steit.ValidateTag(steit.MaxTag+1))
	testutil.AssertError(t, steit.ValidateTag(math.MaxUint32))
}

func TestValidateTag_Boundary(t *testing.T) {
	t.Parallel()

	testutil.ExpectEq(t, uint32(536870912), steit.TagLimit)
	testutil.ExpectEq(t, uint32(536870911), steit.MaxTag)
}

func TestValidateTag_Messages(t *testing.T) {
	t.Parallel()

	testutil.ExpectEq(t, "tag 0 is reserved", steit.ValidateTag(0).Error())
	testutil.ExpectEq(
		t,
		"tag 536870912 must be less than 536870912",
		steit.ValidateTag(steit.TagLimit).Error(),
	)
}

func TestKey(t *testing.T) {
	t.Parallel()

	key, err := steit.Key(1, steit.WireTypeVarint)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, uint32(0x08), key)

	key, err = steit.Key(steit.MaxTag, steit.WireTypeSized)
	testutil.AssertNoError(t, err)
	tag, wireType := steit.SplitKey(key)
	testutil.ExpectEq(t, steit.MaxTag, tag)
	testutil.ExpectEq(t, steit.WireTypeSized, wireType)

	_, err = steit.Key(0, steit.WireTypeVarint)
	testutil.AssertError(t, err)
	_, err = steit.Key(steit.TagLimit, steit.WireTypeVarint)
	testutil.AssertError(t, err)
}
