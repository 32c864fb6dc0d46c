package main

import (
	"sort"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/session"
	"github.com/Grazulex/Tower/pkg/types"
	"github.com/Grazulex/Tower/pkg/utils"
)

// candidate 一个可建造格子及其覆盖的路径格子数
type candidate struct {
	cell     types.Cell
	coverage int
}

// rankCells 按覆盖路径格子数从高到低排列空闲格子
// 覆盖数相同时按行、列排序，保证结果稳定
func rankCells(board session.BoardView, towerRange float64) []candidate {
	var out []candidate
	for r := 0; r < board.Rows; r++ {
		for c := 0; c < board.Cols; c++ {
			cell := types.Cell{Row: r, Col: c}
			if board.Occupancy[r][c] != 0 || board.IsPath(cell) {
				continue
			}
			cx, cy := utils.CellCenter(cell, board.CellSize)
			coverage := 0
			for _, p := range board.Path {
				px, py := utils.CellCenter(p, board.CellSize)
				if utils.Distance(cx, cy, px, py) <= towerRange {
					coverage++
				}
			}
			if coverage > 0 {
				out = append(out, candidate{cell: cell, coverage: coverage})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].coverage > out[j].coverage
	})
	return out
}

// autoPlace 把当前金币全部花在覆盖路径最多的格子上
// 每次买得起的最贵防御塔优先
//
// 返回：
//
//	int - 本次建造的防御塔数量
func autoPlace(s *session.Session, catalog *config.Catalog) int {
	built := 0
	for {
		category, ok := bestAffordable(s, catalog)
		if !ok {
			return built
		}
		stats, _ := catalog.GetTowerStats(category)
		ranked := rankCells(s.Snapshot().Board, stats.Range)
		if len(ranked) == 0 {
			return built
		}
		if !s.PlaceEmplacement(ranked[0].cell.Row, ranked[0].cell.Col, category) {
			return built
		}
		built++
	}
}

// bestAffordable 买得起的最贵防御塔
func bestAffordable(s *session.Session, catalog *config.Catalog) (types.TowerCategory, bool) {
	best := types.TowerUnknown
	bestCost := -1
	for _, category := range types.AllTowerCategories {
		stats, ok := catalog.GetTowerStats(category)
		if !ok || !s.CanAfford(category) {
			continue
		}
		if stats.Cost > bestCost {
			best, bestCost = category, stats.Cost
		}
	}
	return best, bestCost >= 0
}
