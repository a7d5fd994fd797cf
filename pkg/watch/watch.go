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
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher reports directories in which files with a given extension have
// changed.  Changes arriving in quick succession are reported together, once
// things have settled.
type Watcher struct {
	w     *fsnotify.Watcher
	ext   string
	delay time.Duration
}

// New constructs a watcher over a given set of directories, looking for files
// with a given extension (e.g. ".ogo").
func New(ext string, delay time.Duration, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	//
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
		//
		log.Debugf("watching directory %s", dir)
	}
	//
	return &Watcher{w, ext, delay}, nil
}

// Matches checks whether a given file is one being watched for.
func (p *Watcher) Matches(name string) bool {
	return strings.HasSuffix(filepath.Base(name), p.ext) && filepath.Base(name) != p.ext
}

// Run the watcher until the context is cancelled, calling handle with the
// (sorted) directories in which changes were seen.  The watcher is closed on
// return.
func (p *Watcher) Run(ctx context.Context, handle func(dirs []string)) error {
	var (
		pending = make(map[string]bool)
		timer   = time.NewTimer(p.delay)
	)
	//
	defer p.w.Close()
	//
	timer.Stop()
	//
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-p.w.Events:
			if !ok {
				return nil
			} else if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 || !p.Matches(ev.Name) {
				continue
			}
			//
			log.Debugf("%s %s", ev.Op, ev.Name)
			pending[filepath.Dir(ev.Name)] = true
			timer.Reset(p.delay)
		case err, ok := <-p.w.Errors:
			if !ok {
				return nil
			}
			//
			return err
		case <-timer.C:
			var dirs []string
			//
			for dir := range pending {
				dirs = append(dirs, dir)
			}
			//
			slices.Sort(dirs)
			clear(pending)
			handle(dirs)
		}
	}
}
