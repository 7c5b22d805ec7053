/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces editor write bursts (truncate+write, atomic
// rename) into a single reload.
const watchDebounce = 100 * time.Millisecond

// Watch reloads the store from a YAML file whenever the file changes, until
// ctx is done. The initial load happens immediately; subsequent writes,
// creates and renames of the file trigger a debounced reload.
//
// Reload failures (unreadable file, parse error, unknown preset) do not stop
// the watch: the store keeps its last good configuration and the error is
// reported to onErr, which may be nil. Only watcher setup and the initial
// load fail synchronously.
func (s *Store) Watch(ctx context.Context, path string, onErr func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("tryx: resolve config path: %w", err)
	}

	p, err := LoadFile(abs)
	if err != nil {
		return err
	}
	s.Apply(p)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("tryx: create config watcher: %w", err)
	}
	// Watch the directory, not the file: editors and config maps replace
	// the file by rename, which drops a direct file watch.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("tryx: watch config dir: %w", err)
	}

	go func() {
		defer fw.Close()

		var pending *time.Timer
		reload := func() {
			p, err := LoadFile(abs)
			if err != nil {
				if onErr != nil {
					onErr(err)
				}
				return
			}
			s.Apply(p)
		}

		for {
			select {
			case <-ctx.Done():
				if pending != nil {
					pending.Stop()
				}
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(watchDebounce, reload)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				if onErr != nil {
					onErr(err)
				}
			}
		}
	}()

	return nil
}
