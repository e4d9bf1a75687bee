// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import "time"

// SetNow fixes the creation time of new runs. The zero time restores
// the clock.
func SetNow(t time.Time) {
	if t.IsZero() {
		now = time.Now
		return
	}
	now = func() time.Time { return t }
}
