package constraint

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// AssignmentIndex 按 用户 → 日期 索引的排班表
// 每次求解迭代私有构建一份，覆盖回看窗口与本轮已落位的全部排班，
// 乱序填充班位时据此双向检查连班、休息与休假间隔
type AssignmentIndex struct {
	byUser map[int64]map[string]*model.Assignment
}

// NewAssignmentIndex 创建空索引
func NewAssignmentIndex() *AssignmentIndex {
	return &AssignmentIndex{
		byUser: make(map[int64]map[string]*model.Assignment),
	}
}

// Seed 批量载入已有排班（回看窗口 + 锁定记录）
func (ix *AssignmentIndex) Seed(assignments []*model.Assignment) {
	for _, a := range assignments {
		ix.Add(a)
	}
}

// Add 登记一条排班
// 同一用户同一天已有记录时保留先到者（每人每天至多一班的数据不变式）
func (ix *AssignmentIndex) Add(a *model.Assignment) {
	dates, ok := ix.byUser[a.UserID]
	if !ok {
		dates = make(map[string]*model.Assignment)
		ix.byUser[a.UserID] = dates
	}
	if _, exists := dates[a.Date]; !exists {
		dates[a.Date] = a
	}
}

// Has 检查用户在指定日期是否已有排班
func (ix *AssignmentIndex) Has(userID int64, date string) bool {
	_, ok := ix.byUser[userID][date]
	return ok
}

// Get 返回用户在指定日期的排班（无则为 nil）
func (ix *AssignmentIndex) Get(userID int64, date string) *model.Assignment {
	return ix.byUser[userID][date]
}

// CountFor 返回用户在索引中的排班总数
func (ix *AssignmentIndex) CountFor(userID int64) int {
	return len(ix.byUser[userID])
}
