// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/consensys/go-orderless/pkg/util/assert"
)

func Test_Watch_01(t *testing.T) {
	w := checkWatcher(t, ".ogo")
	//
	assert.True(t, w.Matches("a/b.ogo"))
	assert.True(t, w.Matches("b.gen.ogo"))
	assert.False(t, w.Matches("b.go"))
	assert.False(t, w.Matches("a/.ogo"))
}

func Test_Watch_02(t *testing.T) {
	var (
		dir     = t.TempDir()
		w       = checkWatcher(t, ".ogo", dir)
		changed = make(chan []string, 1)
		done    = make(chan error, 1)
	)
	//
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	//
	go func() {
		done <- w.Run(ctx, func(dirs []string) {
			select {
			case changed <- dirs:
			default:
			}
		})
	}()
	// Ignored
	assert.True(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0644) == nil)
	// Reported
	assert.True(t, os.WriteFile(filepath.Join(dir, "a.ogo"), []byte("package a\n"), 0644) == nil)
	//
	select {
	case dirs := <-changed:
		assert.Equal(t, []string{dir}, dirs)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	//
	cancel()
	assert.True(t, <-done == nil)
}

func Test_Watch_Invalid_01(t *testing.T) {
	_, err := New(".ogo", time.Millisecond, filepath.Join(t.TempDir(), "missing"))
	assert.True(t, err != nil)
}

// ============================================================================
// Framework
// ============================================================================

func checkWatcher(t *testing.T, ext string, dirs ...string) *Watcher {
	w, err := New(ext, 20*time.Millisecond, dirs...)
	assert.True(t, err == nil, "unexpected error: %v", err)
	//
	return w
}
