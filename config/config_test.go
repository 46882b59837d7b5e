package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if conf.DataDir != "data" || conf.Quiet {
		t.Errorf("defaults %+v", conf)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rawmap.yaml")
	content := "data_dir: /srv/rawmaps\nquiet: true\n"
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.DataDir != "/srv/rawmaps" || !conf.Quiet {
		t.Errorf("loaded %+v", conf)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing config file accepted")
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := ioutil.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	conf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.DataDir != "data" {
		t.Errorf("data dir %q", conf.DataDir)
	}
}
