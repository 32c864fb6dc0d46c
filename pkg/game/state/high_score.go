package state

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// HighScoreData 持久化的最高分记录
type HighScoreData struct {
	Score      int       `yaml:"score"`      // 最高分（游戏结束时的金币数）
	Wave       int       `yaml:"wave"`       // 达成时的波次
	Kills      int       `yaml:"kills"`      // 达成时的击杀数
	AchievedAt time.Time `yaml:"achievedAt"` // 达成时间
	Player     string    `yaml:"player"`     // 达成的玩家，游客为空
}

// HighScoreStore 最高分的存储后端
// Load 在没有记录时返回零值和 nil
type HighScoreStore interface {
	Load() (HighScoreData, error)
	Save(data HighScoreData) error
}

// Store 同时保存最高分和玩家档案的后端
type Store interface {
	HighScoreStore
	ProfileStore
}

// 存储路径常量
const (
	highScoreObject   = "scores"
	highScoreProperty = "high"
	profilesProperty  = "profiles"
	highScoreFileName = "highscore.yaml"
	profilesFileName  = "profiles.yaml"
)

// GdataStore 基于 gdata 的跨平台存储
type GdataStore struct {
	manager *gdata.Manager
}

// NewGdataStore 创建 gdata 存储
// manager 为 nil 时返回 nil，调用方应退回内存模式
func NewGdataStore(manager *gdata.Manager) *GdataStore {
	if manager == nil {
		return nil
	}
	return &GdataStore{manager: manager}
}

// load 读取属性，不存在时返回 nil
func (s *GdataStore) load(prop string) ([]byte, error) {
	if !s.manager.ObjectPropExists(highScoreObject, prop) {
		return nil, nil
	}
	raw, err := s.manager.LoadObjectProp(highScoreObject, prop)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", prop, err)
	}
	return raw, nil
}

func (s *GdataStore) save(prop string, v interface{}) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", prop, err)
	}
	if err := s.manager.SaveObjectProp(highScoreObject, prop, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", prop, err)
	}
	return nil
}

// Load 读取最高分
func (s *GdataStore) Load() (HighScoreData, error) {
	raw, err := s.load(highScoreProperty)
	if err != nil || raw == nil {
		return HighScoreData{}, err
	}
	return decodeHighScore(raw)
}

// Save 写入最高分
func (s *GdataStore) Save(data HighScoreData) error {
	return s.save(highScoreProperty, &data)
}

// LoadProfiles 读取玩家档案
func (s *GdataStore) LoadProfiles() (ProfileList, error) {
	raw, err := s.load(profilesProperty)
	if err != nil || raw == nil {
		return ProfileList{}, err
	}
	return decodeProfiles(raw)
}

// SaveProfiles 写入玩家档案
func (s *GdataStore) SaveProfiles(list ProfileList) error {
	return s.save(profilesProperty, &list)
}

// FileStore 把最高分和玩家档案保存为目录中的 YAML 文件
type FileStore struct {
	path         string
	profilesPath string
}

// NewFileStore 创建文件存储，目录不存在时自动创建
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &FileStore{
		path:         filepath.Join(dir, highScoreFileName),
		profilesPath: filepath.Join(dir, profilesFileName),
	}, nil
}

// Path 返回存档文件路径
func (s *FileStore) Path() string {
	return s.path
}

// readFile 读取文件，不存在时返回 nil
func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return raw, nil
}

// writeYAML 先写临时文件再重命名，避免写到一半的存档
func writeYAML(path string, v interface{}) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Load 读取最高分，文件不存在时返回零值
func (s *FileStore) Load() (HighScoreData, error) {
	raw, err := readFile(s.path)
	if err != nil || raw == nil {
		return HighScoreData{}, err
	}
	return decodeHighScore(raw)
}

// Save 写入最高分
func (s *FileStore) Save(data HighScoreData) error {
	return writeYAML(s.path, &data)
}

// LoadProfiles 读取玩家档案，文件不存在时返回空列表
func (s *FileStore) LoadProfiles() (ProfileList, error) {
	raw, err := readFile(s.profilesPath)
	if err != nil || raw == nil {
		return ProfileList{}, err
	}
	return decodeProfiles(raw)
}

// SaveProfiles 写入玩家档案
func (s *FileStore) SaveProfiles(list ProfileList) error {
	return writeYAML(s.profilesPath, &list)
}

func decodeHighScore(raw []byte) (HighScoreData, error) {
	var data HighScoreData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return HighScoreData{}, fmt.Errorf("failed to unmarshal high score: %w", err)
	}
	if data.Score < 0 {
		data.Score = 0
	}
	return data, nil
}

func decodeProfiles(raw []byte) (ProfileList, error) {
	var list ProfileList
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return ProfileList{}, fmt.Errorf("failed to unmarshal profiles: %w", err)
	}
	return list, nil
}

// HighScoreManager 最高分管理器
//
// 启动时从存储加载一次；游戏结束时提交最终得分，只有严格更高时才保存。
// 存储失败只记录日志，不影响游戏
type HighScoreManager struct {
	store    HighScoreStore // 可为 nil（仅内存）
	current  HighScoreData
	profiles *SaveManager // 可为 nil，设置后得分同时记入当前玩家
}

// NewHighScoreManager 创建最高分管理器
// store 为 nil 时只在内存中记录；加载失败时从 0 开始
func NewHighScoreManager(store HighScoreStore) *HighScoreManager {
	hm := &HighScoreManager{store: store}
	if store == nil {
		return hm
	}

	data, err := store.Load()
	if err != nil {
		log.Printf("[HighScoreManager] Warning: Failed to load high score: %v (starting at 0)", err)
		return hm
	}
	hm.current = data
	log.Printf("[HighScoreManager] Loaded high score %d (wave %d)", data.Score, data.Wave)
	return hm
}

// SetProfiles 关联玩家档案
func (hm *HighScoreManager) SetProfiles(profiles *SaveManager) {
	hm.profiles = profiles
}

// Profiles 返回关联的玩家档案，可能为 nil
func (hm *HighScoreManager) Profiles() *SaveManager {
	return hm.profiles
}

// GetHighScore 返回当前最高分
func (hm *HighScoreManager) GetHighScore() int {
	return hm.current.Score
}

// GetRecord 返回完整的最高分记录
func (hm *HighScoreManager) GetRecord() HighScoreData {
	return hm.current
}

// UpdateHighScore 提交一局的最终得分
//
// 返回：
//   - bool: 是否刷新了最高分（严格大于原记录）
func (hm *HighScoreManager) UpdateHighScore(score int) bool {
	return hm.Submit(HighScoreData{Score: score})
}

// Submit 提交带波次和击杀数的记录，规则同 UpdateHighScore
// 关联了玩家档案时，无论是否刷新纪录，得分都会记入当前玩家
func (hm *HighScoreManager) Submit(record HighScoreData) bool {
	if hm.profiles != nil {
		hm.profiles.RecordScore(record.Score)
		if record.Player == "" {
			record.Player = hm.profiles.CurrentUser()
		}
	}
	if record.Score <= hm.current.Score {
		return false
	}
	if record.AchievedAt.IsZero() {
		record.AchievedAt = time.Now()
	}
	hm.current = record

	if hm.store != nil {
		if err := hm.store.Save(record); err != nil {
			log.Printf("[HighScoreManager] Warning: Failed to save high score: %v", err)
		}
	}
	log.Printf("[HighScoreManager] New high score: %d", record.Score)
	return true
}
