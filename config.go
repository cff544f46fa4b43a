// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"fontladder/fonts"
)

type config struct {
	Theme        string
	Scaling      float64
	FontPath     string
	FontSize     int
	LadderOffset int
	Namespace    string
	SourcePath   string
}

const configFile = "config.toml"

func defaultConfig() config {
	return config{
		Theme:        "dark",
		Scaling:      1.0,
		FontPath:     "",
		FontSize:     fonts.DefaultSize,
		LadderOffset: 0,
		Namespace:    "assets",
		SourcePath:   "assets",
	}
}

func initializeConfigIfNot() {
	log.Println("Checking if config needs to be initialized")

	conf := defaultConfig()

	configdir := configDir()
	ok, err := exists(configdir)
	if err != nil {
		log.Fatalf("Couldn't check if config directory exists: %v\n", err)
	}
	if !ok {
		err = os.MkdirAll(configdir, 0700)
		if err != nil {
			log.Fatalf("Couldn't create config directory: %v\n", err)
		}
	}
	tomlfile := filepath.Join(configdir, configFile)
	ok, err = exists(tomlfile)
	if err != nil {
		log.Fatalf("Couldn't check if config file exists: %v\n", err)
	}
	if !ok {
		log.Println("Initializing config")
		if err := writeConfig(&conf); err != nil {
			log.Fatalf("%v\n", err)
		}
	}
}

func readConfig() *config {
	conf, err := loadConfig(filepath.Join(configDir(), configFile))
	if err != nil {
		log.Fatalf("Couldn't read config file: %v\n", err)
	}
	return conf
}

// loadConfig decodes f on top of the defaults and repairs values a hand
// edit could have broken.
func loadConfig(f string) (*config, error) {
	conf := defaultConfig()
	if _, err := toml.DecodeFile(f, &conf); err != nil {
		return nil, err
	}
	if conf.Scaling <= 0 {
		conf.Scaling = 1.0
	}
	if conf.FontSize <= 0 {
		conf.FontSize = fonts.DefaultSize
	}
	conf.LadderOffset = fonts.ClampOffset(conf.LadderOffset)
	return &conf, nil
}

func writeConfig(conf *config) error {
	return saveConfig(filepath.Join(configDir(), configFile), conf)
}

// saveConfig replaces f in one step, so a reader sees either the old or the
// new file and never a mix of both.
func saveConfig(f string, conf *config) error {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(conf); err != nil {
		return fmt.Errorf("couldn't encode config: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f), "."+configFile+"-*")
	if err != nil {
		return fmt.Errorf("couldn't write config file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buffer.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("couldn't write config file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("couldn't write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("couldn't write config file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f); err != nil {
		return fmt.Errorf("couldn't write config file: %w", err)
	}
	return nil
}

// configWriter saves config snapshots off the UI goroutine one at a time.
// A snapshot older than the last one written is dropped.
type configWriter struct {
	mu      sync.Mutex
	queued  uint64
	written uint64
	wg      sync.WaitGroup
}

var asyncWriter configWriter

func (cw *configWriter) save(snapshot config) {
	cw.mu.Lock()
	cw.queued++
	seq := cw.queued
	cw.mu.Unlock()

	cw.wg.Add(1)
	go func() {
		defer cw.wg.Done()
		cw.mu.Lock()
		defer cw.mu.Unlock()
		if seq < cw.written {
			return
		}
		if err := writeConfig(&snapshot); err != nil {
			log.Printf("%v\n", err)
			return
		}
		cw.written = seq
	}()
}

// wait blocks until every queued write has finished.
func (cw *configWriter) wait() {
	cw.wg.Wait()
}

// writeConfigAsync saves a copy of conf off the UI goroutine.
func writeConfigAsync(conf *config) {
	asyncWriter.save(*conf)
}

func configDir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "fontladder")
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg string, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			log.Printf("Resolved $%s to '%s'\n", xdg, dir)
			return dir
		}

	}

	log.Printf("Couldn't resolve $%s falling back to '%s'\n", xdg, fallback)
	return fallback
}
