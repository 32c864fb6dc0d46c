package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建测试专用的 gdata Manager
// HOME 和 XDG_DATA_HOME 指向临时目录，测试结束后自动清理
// 受限环境中无法创建时返回 nil
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	appName := fmt.Sprintf("tower_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Logf("gdata unavailable: %v", err)
		return nil
	}
	return manager
}
