// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package buildtags exposes the relevant build tags as boolean constants,
// allowing conditionals on build tags outside of file-level gating.
package buildtags
