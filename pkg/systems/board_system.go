package systems

import (
	"fmt"
	"log"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/entities"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/types"
)

// BoardSystem 管理棋盘的占用状态
// 负责路径标记、防御塔建造与拆除，保证每个格子要么为空、要么属于路径、
// 要么恰好有一座防御塔
type BoardSystem struct {
	entityManager *ecs.EntityManager
	catalog       *config.Catalog
	economy       *state.EconomyState
	dispatcher    *event.Dispatcher
	boardEntity   ecs.EntityID
}

// NewBoardSystem 创建棋盘系统，并创建棋盘实体
// 参数:
//   - em: EntityManager 实例
//   - catalog: 数值表（棋盘尺寸、防御塔数值）
//   - economy: 建造扣费
//   - dispatcher: 事件分发器，可为 nil
func NewBoardSystem(em *ecs.EntityManager, catalog *config.Catalog, economy *state.EconomyState, dispatcher *event.Dispatcher) *BoardSystem {
	return &BoardSystem{
		entityManager: em,
		catalog:       catalog,
		economy:       economy,
		dispatcher:    dispatcher,
		boardEntity:   entities.NewBoardEntity(em, catalog.Board),
	}
}

// BoardEntity 返回棋盘实体ID
func (s *BoardSystem) BoardEntity() ecs.EntityID {
	return s.boardEntity
}

// Board 返回棋盘组件
func (s *BoardSystem) Board() *components.BoardComponent {
	board, _ := ecs.GetComponent[*components.BoardComponent](s.entityManager, s.boardEntity)
	return board
}

// Reset 清空棋盘并设置新路径
// 所有防御塔实体被销毁（不退款）
func (s *BoardSystem) Reset(path []types.Cell) {
	board := s.Board()
	if board == nil {
		return
	}

	for _, id := range board.Emplacements {
		s.entityManager.DestroyEntity(id)
	}
	board.Emplacements = make(map[types.Cell]ecs.EntityID)
	for r := range board.Occupancy {
		for c := range board.Occupancy[r] {
			board.Occupancy[r][c] = 0
		}
	}

	board.Path = path
	board.PathCells = make(map[types.Cell]bool, len(path))
	for _, cell := range path {
		board.PathCells[cell] = true
	}
}

// CanPlace 检查格子是否可以建造
//
// 返回:
//   - error: 越界、路径格子或已被占用时返回原因
func (s *BoardSystem) CanPlace(row, col int) error {
	board := s.Board()
	if board == nil {
		return fmt.Errorf("board entity missing")
	}
	if !board.InBounds(row, col) {
		return fmt.Errorf("cell (%d,%d) is out of bounds (%dx%d)", row, col, board.Rows, board.Cols)
	}
	cell := types.Cell{Row: row, Col: col}
	if board.PathCells[cell] {
		return fmt.Errorf("cell (%d,%d) is on the path", row, col)
	}
	if board.Occupancy[row][col] != 0 {
		return fmt.Errorf("cell (%d,%d) is already occupied", row, col)
	}
	return nil
}

// PlaceEmplacement 在格子上建造防御塔
// 先校验格子，再扣费；任一步失败都不修改状态
//
// 返回:
//   - ecs.EntityID: 新防御塔实体
//   - bool: 是否建造成功
func (s *BoardSystem) PlaceEmplacement(row, col int, category types.TowerCategory, nowMs int64) (ecs.EntityID, bool) {
	if err := s.CanPlace(row, col); err != nil {
		log.Printf("[BoardSystem] Placement rejected: %v", err)
		return 0, false
	}
	stats, ok := s.catalog.GetTowerStats(category)
	if !ok {
		log.Printf("[BoardSystem] Placement rejected: unknown tower %s", category)
		return 0, false
	}
	if !s.economy.Spend(stats.Cost) {
		log.Printf("[BoardSystem] Placement rejected: %s costs %d, have %d", category, stats.Cost, s.economy.GetCurrency())
		return 0, false
	}

	cell := types.Cell{Row: row, Col: col}
	id, err := entities.NewEmplacementEntity(s.entityManager, s.catalog, category, cell, nowMs)
	if err != nil {
		// 数值行已校验过，这里只可能是 em 为 nil；退还费用保持一致
		s.economy.Earn(stats.Cost)
		log.Printf("[BoardSystem] Failed to create emplacement: %v", err)
		return 0, false
	}

	board := s.Board()
	board.Occupancy[row][col] = stats.GridCode
	board.Emplacements[cell] = id

	s.dispatcher.Dispatch(event.Event{
		Type: event.EmplacementPlaced,
		Data: event.EmplacementEvent{TowerID: id, Cell: cell, Category: category, Cost: stats.Cost},
	})
	return id, true
}

// RemoveEmplacement 拆除格子上的防御塔（不退款）
// 格子上没有防御塔时返回 false
func (s *BoardSystem) RemoveEmplacement(row, col int) bool {
	board := s.Board()
	if board == nil || !board.InBounds(row, col) {
		return false
	}
	cell := types.Cell{Row: row, Col: col}
	id, ok := board.Emplacements[cell]
	if !ok {
		return false
	}

	category := s.catalog.TowerCategoryForCode(board.Occupancy[row][col])
	delete(board.Emplacements, cell)
	board.Occupancy[row][col] = 0
	s.entityManager.DestroyEntity(id)

	s.dispatcher.Dispatch(event.Event{
		Type: event.EmplacementRemoved,
		Data: event.EmplacementEvent{TowerID: id, Cell: cell, Category: category},
	})
	return true
}

// EmplacementAt 返回格子上的防御塔
func (s *BoardSystem) EmplacementAt(row, col int) (ecs.EntityID, bool) {
	board := s.Board()
	if board == nil {
		return 0, false
	}
	id, ok := board.Emplacements[types.Cell{Row: row, Col: col}]
	return id, ok
}
