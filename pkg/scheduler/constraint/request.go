package constraint

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// ruleRequestOff 请求休假：当天的 off 请求若覆盖该班次则拒绝
func ruleRequestOff(c *Candidate, _ *AssignmentIndex, _ *Context) (bool, string) {
	if c.Request == nil || c.Request.Type != model.RequestOff {
		return false, ""
	}
	if c.Request.BlocksShift(c.Shift.ID) {
		return true, "Requested Off"
	}
	return false, ""
}

// ruleRequestAvoid 请求避开某班次
func ruleRequestAvoid(c *Candidate, _ *AssignmentIndex, _ *Context) (bool, string) {
	if c.Request == nil || c.Request.Type != model.RequestAvoid {
		return false, ""
	}
	if c.Request.AvoidsShift(c.Shift.ID) {
		return true, "Requested Off"
	}
	return false, ""
}
