package state

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"
)

// GuestName 游客模式下显示的名字
const GuestName = "Guest"

// maxUsernameLength 用户名最大长度
const maxUsernameLength = 20

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// PlayerProfile 玩家档案
type PlayerProfile struct {
	Username    string    `yaml:"username"`    // 用户名（保留创建时的大小写）
	CreatedAt   time.Time `yaml:"createdAt"`   // 创建时间
	LastLoginAt time.Time `yaml:"lastLoginAt"` // 最后登录时间
	Scores      []int     `yaml:"scores"`      // 历史得分，从高到低
}

// ProfileList 所有玩家档案
type ProfileList struct {
	Users    []PlayerProfile `yaml:"users"`
	LastUser string          `yaml:"lastUser"` // 上次登录的用户名，菜单用来预填
}

// ProfileStore 玩家档案的存储后端
// LoadProfiles 在没有记录时返回零值和 nil
type ProfileStore interface {
	LoadProfiles() (ProfileList, error)
	SaveProfiles(list ProfileList) error
}

// LeaderboardEntry 排行榜的一行
type LeaderboardEntry struct {
	Username string
	Score    int
}

// SaveManager 玩家档案管理器
//
// 职责：
//   - 用户名校验、创建和登录（大小写不敏感）
//   - 游客模式（不记录得分）
//   - 每个玩家的得分列表和排行榜
//
// 启动时处于游客模式，需要调用 Login 选择玩家
type SaveManager struct {
	store   ProfileStore // 可为 nil（仅内存）
	list    ProfileList
	current int // list.Users 下标，-1 表示游客
}

// NewSaveManager 创建档案管理器
// store 为 nil 时只在内存中记录；加载失败时从空列表开始
func NewSaveManager(store ProfileStore) *SaveManager {
	sm := &SaveManager{store: store, current: -1}
	if store == nil {
		return sm
	}

	list, err := store.LoadProfiles()
	if err != nil {
		log.Printf("[SaveManager] Warning: Failed to load profiles: %v (starting empty)", err)
		return sm
	}
	for i := range list.Users {
		sortScores(list.Users[i].Scores)
	}
	sm.list = list
	log.Printf("[SaveManager] Loaded %d profiles", len(list.Users))
	return sm
}

// ValidateUsername 验证用户名合法性
//
// 规则：
//   - 不能为空（首尾空格不计）
//   - 只能包含字母、数字、空格
//   - 长度不超过 20 个字符
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("enter a name to create a profile")
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("name must be at most %d characters", maxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("name may only contain letters, digits and spaces")
	}
	return nil
}

// IsUsernameRune 报告 r 是否可以出现在用户名中，输入框用它过滤按键
func IsUsernameRune(r rune) bool {
	return r == ' ' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// find 按用户名查找（大小写不敏感），找不到返回 -1
func (sm *SaveManager) find(username string) int {
	for i, user := range sm.list.Users {
		if strings.EqualFold(user.Username, username) {
			return i
		}
	}
	return -1
}

// Login 以 username 登录，不存在时自动创建
//
// 返回：
//   - created: 是否新建了档案
//   - error: 用户名不合法
func (sm *SaveManager) Login(username string) (created bool, err error) {
	if err := ValidateUsername(username); err != nil {
		return false, err
	}
	username = strings.TrimSpace(username)
	now := time.Now()

	idx := sm.find(username)
	if idx < 0 {
		sm.list.Users = append(sm.list.Users, PlayerProfile{
			Username:    username,
			CreatedAt:   now,
			LastLoginAt: now,
		})
		idx = len(sm.list.Users) - 1
		created = true
		log.Printf("[SaveManager] Created profile %q", username)
	} else {
		sm.list.Users[idx].LastLoginAt = now
	}

	sm.current = idx
	sm.list.LastUser = sm.list.Users[idx].Username
	sm.persist()
	return created, nil
}

// PlayAsGuest 切换到游客模式
func (sm *SaveManager) PlayAsGuest() {
	sm.current = -1
}

// IsGuest 当前是否为游客
func (sm *SaveManager) IsGuest() bool {
	return sm.current < 0
}

// CurrentUser 返回当前玩家名，游客返回空字符串
func (sm *SaveManager) CurrentUser() string {
	if sm.current < 0 {
		return ""
	}
	return sm.list.Users[sm.current].Username
}

// DisplayName 返回界面上显示的名字
func (sm *SaveManager) DisplayName() string {
	if sm.current < 0 {
		return GuestName
	}
	return sm.list.Users[sm.current].Username
}

// LastUser 返回上次登录的用户名
func (sm *SaveManager) LastUser() string {
	return sm.list.LastUser
}

// RecordScore 把得分记入当前玩家的历史
//
// 游客和负分不记录；与已有得分相同的分数不重复记录
//
// 返回：
//   - bool: 是否为已登录玩家记录（含重复分数的情况）
func (sm *SaveManager) RecordScore(score int) bool {
	if sm.current < 0 || score < 0 {
		return false
	}

	user := &sm.list.Users[sm.current]
	for _, s := range user.Scores {
		if s == score {
			return true
		}
	}
	user.Scores = append(user.Scores, score)
	sortScores(user.Scores)
	sm.persist()
	return true
}

// Scores 返回玩家的得分列表副本（从高到低），用户名大小写不敏感
func (sm *SaveManager) Scores(username string) []int {
	idx := sm.find(username)
	if idx < 0 {
		return nil
	}
	scores := make([]int, len(sm.list.Users[idx].Scores))
	copy(scores, sm.list.Users[idx].Scores)
	return scores
}

// BestScore 返回玩家的最高分，没有记录时为 0
func (sm *SaveManager) BestScore(username string) int {
	scores := sm.Scores(username)
	if len(scores) == 0 {
		return 0
	}
	return scores[0]
}

// Leaderboard 返回每个玩家的最高分，从高到低，最多 limit 行
// 同分按用户名排序；没有得分的玩家不出现
func (sm *SaveManager) Leaderboard(limit int) []LeaderboardEntry {
	var entries []LeaderboardEntry
	for _, user := range sm.list.Users {
		if len(user.Scores) == 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{Username: user.Username, Score: user.Scores[0]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return strings.ToLower(entries[i].Username) < strings.ToLower(entries[j].Username)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// LoadUserList 返回所有档案（按创建时间排序）
func (sm *SaveManager) LoadUserList() []PlayerProfile {
	users := make([]PlayerProfile, len(sm.list.Users))
	copy(users, sm.list.Users)
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users
}

func (sm *SaveManager) persist() {
	if sm.store == nil {
		return
	}
	if err := sm.store.SaveProfiles(sm.list); err != nil {
		log.Printf("[SaveManager] Warning: Failed to save profiles: %v", err)
	}
}

func sortScores(scores []int) {
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))
}
