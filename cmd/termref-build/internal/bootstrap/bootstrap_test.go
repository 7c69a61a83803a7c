package bootstrap

import "testing"

func TestBuildModuleRequiresManifestPath(t *testing.T) {
	_, err := BuildModule(Options{})
	if err == nil {
		t.Fatal("expected an error when ManifestPath is empty")
	}
}

func TestBuildModuleDefaultsToConsoleLogger(t *testing.T) {
	module, err := BuildModule(Options{ManifestPath: "specs.json"})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Logger == nil {
		t.Fatal("expected a configured logger")
	}
	if module.Config.ManifestPath != "specs.json" {
		t.Fatalf("expected ManifestPath to propagate, got %q", module.Config.ManifestPath)
	}
	if module.Config.LoggerProvider == nil {
		t.Fatal("expected a logger provider to be attached to the build config")
	}
}

func TestBuildModulePropagatesCheckAndPaths(t *testing.T) {
	module, err := BuildModule(Options{
		ManifestPath: "specs.json",
		CacheDir:     "/tmp/cache",
		TemplatePath: "/tmp/template.html",
		Branch:       "release",
		Check:        true,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Config.CacheDir != "/tmp/cache" {
		t.Errorf("expected CacheDir to propagate, got %q", module.Config.CacheDir)
	}
	if module.Config.TemplatePath != "/tmp/template.html" {
		t.Errorf("expected TemplatePath to propagate, got %q", module.Config.TemplatePath)
	}
	if module.Config.Branch != "release" {
		t.Errorf("expected Branch to propagate, got %q", module.Config.Branch)
	}
	if !module.Config.Check {
		t.Error("expected Check to propagate as true")
	}
}

func TestBuildModuleRejectsUnknownLogFormat(t *testing.T) {
	_, err := BuildModule(Options{ManifestPath: "specs.json", LogFormat: "xml"})
	if err == nil {
		t.Fatal("expected an error for an unsupported log format")
	}
}
