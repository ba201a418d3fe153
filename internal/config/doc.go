// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads, normalizes, and validates linkbench settings.
//
// Settings come from an optional TOML file layered over [Default]. Sizes
// are written in human form ("4 KiB", "1MB") and parsed once during
// normalization, so callers read plain integers.
package config
