// Package model 定义排班引擎的核心数据模型
package model

// RequestType 请求类型
type RequestType string

const (
	RequestOff   RequestType = "off"   // 休假：无班次ID时封锁整天，有则只封锁该班次
	RequestAvoid RequestType = "avoid" // 避开某班次
	RequestWork  RequestType = "work"  // 希望工作（可指定班次），计入加分
)

// Request 排班请求
type Request struct {
	ID      int64       `json:"id" db:"id"`
	SiteID  int64       `json:"site_id" db:"site_id"`
	UserID  int64       `json:"user_id" db:"user_id"`
	Date    string      `json:"date" db:"date"` // YYYY-MM-DD
	Type    RequestType `json:"type" db:"type"`
	ShiftID *int64      `json:"shift_id,omitempty" db:"shift_id"`
}

// BlocksShift 检查休假请求是否封锁指定班次
func (r *Request) BlocksShift(shiftID int64) bool {
	if r == nil || r.Type != RequestOff {
		return false
	}
	return r.ShiftID == nil || *r.ShiftID == shiftID
}

// AvoidsShift 检查回避请求是否命中指定班次
func (r *Request) AvoidsShift(shiftID int64) bool {
	if r == nil || r.Type != RequestAvoid {
		return false
	}
	return r.ShiftID == nil || *r.ShiftID == shiftID
}

// WantsWork 检查是否为工作请求，并返回是否精确匹配班次
func (r *Request) WantsWork(shiftID int64) (matches bool, specific bool) {
	if r == nil || r.Type != RequestWork {
		return false, false
	}
	if r.ShiftID != nil && *r.ShiftID == shiftID {
		return true, true
	}
	return true, false
}
