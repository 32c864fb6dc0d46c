package systems

import (
	"math/rand"

	"github.com/Grazulex/Tower/pkg/types"
)

// pathSteps 允许的移动方向：上、下、右
// 路径从不向左走，因此一定从左边界向右边界推进
var pathSteps = [3]types.Cell{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: 1},
}

// GeneratePath 生成一条从左边界出发的随机路径
//
// 起点为 (gridHeight/2, 0)。每一步从 上/下/右 中筛掉越界和已访问的格子后
// 均匀随机选择一个，到达最后一列时结束。如果被困住（没有候选格子）
// 提前结束，短路径同样是合法结果。
//
// 参数：
//
//	gridWidth  - 列数
//	gridHeight - 行数
//	rng        - 随机数源，nil 时使用全局源
//
// 返回：
//
//	有序的格子序列，相邻格子恰好相差一步且不重复，长度至少为 1
func GeneratePath(gridWidth, gridHeight int, rng *rand.Rand) []types.Cell {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}

	startRow := gridHeight / 2
	if startRow < 0 {
		startRow = 0
	}
	current := types.Cell{Row: startRow, Col: 0}
	path := []types.Cell{current}

	if gridWidth <= 1 || gridHeight <= 0 {
		return path
	}

	visited := map[types.Cell]bool{current: true}
	candidates := make([]types.Cell, 0, len(pathSteps))

	for current.Col < gridWidth-1 {
		candidates = candidates[:0]
		for _, step := range pathSteps {
			next := types.Cell{Row: current.Row + step.Row, Col: current.Col + step.Col}
			if next.Row < 0 || next.Row >= gridHeight || next.Col < 0 || next.Col >= gridWidth {
				continue
			}
			if visited[next] {
				continue
			}
			candidates = append(candidates, next)
		}

		if len(candidates) == 0 {
			break
		}

		current = candidates[intn(len(candidates))]
		visited[current] = true
		path = append(path, current)
	}

	return path
}
