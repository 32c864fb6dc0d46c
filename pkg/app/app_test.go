package app

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/embedded"
	"github.com/Grazulex/Tower/pkg/game/state"
	"gopkg.in/yaml.v3"
)

// initEmbeddedCatalog 用默认数值表初始化内嵌资源
func initEmbeddedCatalog(t *testing.T, mutate func(c *config.Catalog)) {
	t.Helper()
	c := config.DefaultCatalog()
	if mutate != nil {
		mutate(c)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		t.Fatalf("Failed to marshal catalog: %v", err)
	}
	embedded.Init(fstest.MapFS{config.DefaultCatalogPath: &fstest.MapFile{Data: data}})
	t.Cleanup(func() { embedded.Init(nil) })
}

func TestLoadCatalog(t *testing.T) {
	initEmbeddedCatalog(t, func(c *config.Catalog) { c.Economy.StartingLives = 9 })

	t.Run("未指定路径使用内嵌数值表", func(t *testing.T) {
		c, err := loadCatalog("")
		if err != nil {
			t.Fatalf("loadCatalog failed: %v", err)
		}
		if c.Economy.StartingLives != 9 {
			t.Errorf("Expected embedded catalog, got startingLives=%d", c.Economy.StartingLives)
		}
	})

	t.Run("磁盘文件优先", func(t *testing.T) {
		c := config.DefaultCatalog()
		c.Economy.StartingLives = 3
		data, _ := yaml.Marshal(c)
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}

		loaded, err := loadCatalog(path)
		if err != nil {
			t.Fatalf("loadCatalog failed: %v", err)
		}
		if loaded.Economy.StartingLives != 3 {
			t.Errorf("Expected override catalog, got startingLives=%d", loaded.Economy.StartingLives)
		}
	})

	t.Run("磁盘文件不可读时回退", func(t *testing.T) {
		c, err := loadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("Expected fallback, got %v", err)
		}
		if c.Economy.StartingLives != 9 {
			t.Errorf("Expected embedded catalog after fallback, got %d", c.Economy.StartingLives)
		}
	})
}

func TestNewScoreStore(t *testing.T) {
	t.Run("指定目录使用文件存储", func(t *testing.T) {
		store := newScoreStore(t.TempDir(), nil)
		if _, ok := store.(*state.FileStore); !ok {
			t.Fatalf("Expected *state.FileStore, got %T", store)
		}

		// 同一个存储同时保存最高分和玩家档案
		profiles := state.NewSaveManager(store)
		profiles.Login("Alice")
		profiles.RecordScore(310)
		if got := state.NewSaveManager(store).BestScore("alice"); got != 310 {
			t.Errorf("Expected 310 after reload, got %d", got)
		}
	})

	t.Run("没有任何存储时为 nil", func(t *testing.T) {
		if store := newScoreStore("", nil); store != nil {
			t.Errorf("Expected nil store, got %T", store)
		}
	})
}
