// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package adapter feeds rows of data to a list or grid host. A
// [GridAdapter] inflates one holder per visible cell from a compiled
// document and rebinds holders to rows as the host scrolls, so the
// number of inflated views stays bounded by what is on screen.
package adapter
