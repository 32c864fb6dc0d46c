package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHighScoreManagerMemory(t *testing.T) {
	hm := NewHighScoreManager(nil)

	if hm.GetHighScore() != 0 {
		t.Fatalf("Expected initial high score 0, got %d", hm.GetHighScore())
	}
	if !hm.UpdateHighScore(150) {
		t.Error("150 should beat 0")
	}
	if hm.UpdateHighScore(150) {
		t.Error("Equal score should not replace the record")
	}
	if hm.UpdateHighScore(90) {
		t.Error("Lower score should not replace the record")
	}
	if hm.GetHighScore() != 150 {
		t.Errorf("Expected 150, got %d", hm.GetHighScore())
	}
}

// TestHighScoreRoundTripNeverDecreases 多次提交并重新加载，记录只增不减
func TestHighScoreRoundTripNeverDecreases(t *testing.T) {
	dir := t.TempDir()
	scores := []int{120, 80, 300, 299, 0, 450, 10}

	best := 0
	for _, score := range scores {
		store, err := NewFileStore(dir)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		hm := NewHighScoreManager(store)
		if hm.GetHighScore() != best {
			t.Fatalf("Reloaded high score %d, expected %d", hm.GetHighScore(), best)
		}

		hm.UpdateHighScore(score)
		if score > best {
			best = score
		}
		if hm.GetHighScore() != best {
			t.Errorf("After submitting %d expected %d, got %d", score, best, hm.GetHighScore())
		}
	}
}

func TestFileStore(t *testing.T) {
	t.Run("文件不存在返回零值", func(t *testing.T) {
		store, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "saves"))
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		data, err := store.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if data.Score != 0 {
			t.Errorf("Expected 0, got %d", data.Score)
		}
	})

	t.Run("保存完整记录", func(t *testing.T) {
		store, _ := NewFileStore(t.TempDir())
		hm := NewHighScoreManager(store)
		hm.Submit(HighScoreData{Score: 500, Wave: 4, Kills: 77})

		reloaded, err := store.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if reloaded.Score != 500 || reloaded.Wave != 4 || reloaded.Kills != 77 {
			t.Errorf("Unexpected record %+v", reloaded)
		}
		if reloaded.AchievedAt.IsZero() {
			t.Error("AchievedAt should be set")
		}
	})

	t.Run("损坏的文件从0开始", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, highScoreFileName), []byte("score: [oops"), 0644); err != nil {
			t.Fatalf("Failed to write corrupt file: %v", err)
		}
		store, _ := NewFileStore(dir)
		hm := NewHighScoreManager(store)
		if hm.GetHighScore() != 0 {
			t.Errorf("Corrupt save should start at 0, got %d", hm.GetHighScore())
		}
		if !hm.UpdateHighScore(10) {
			t.Error("Should still accept new scores")
		}
	})
}

func TestGdataStore(t *testing.T) {
	if NewGdataStore(nil) != nil {
		t.Error("NewGdataStore(nil) should return nil")
	}

	manager := createTestGdataManager(t, "highscore")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	hm := NewHighScoreManager(NewGdataStore(manager))
	if hm.GetHighScore() != 0 {
		t.Fatalf("Expected 0 on a fresh store, got %d", hm.GetHighScore())
	}
	hm.UpdateHighScore(275)

	reloaded := NewHighScoreManager(NewGdataStore(manager))
	if reloaded.GetHighScore() != 275 {
		t.Errorf("Expected 275 after reload, got %d", reloaded.GetHighScore())
	}
	reloaded.UpdateHighScore(100)

	again := NewHighScoreManager(NewGdataStore(manager))
	if again.GetHighScore() != 275 {
		t.Errorf("Lower score must not overwrite, got %d", again.GetHighScore())
	}
}
