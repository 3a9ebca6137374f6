package constraints

import (
	"testing"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

func TestGetLibrary(t *testing.T) {
	library := GetLibrary()
	if len(library) != 14 {
		t.Fatalf("规则数 = %d, expected 14", len(library))
	}

	seen := map[string]bool{}
	checker := 0
	for _, def := range library {
		if def.Name == "" || def.DisplayName == "" || def.Description == "" {
			t.Errorf("规则定义不完整: %+v", def)
		}
		if seen[def.Name] {
			t.Errorf("规则名重复: %s", def.Name)
		}
		seen[def.Name] = true
		if def.DefaultWeight != model.HardWeight {
			t.Errorf("%s 默认权重 = %d", def.Name, def.DefaultWeight)
		}
		if def.CheckerRule {
			checker++
		}
	}
	if checker != 8 {
		t.Errorf("检查器规则数 = %d, expected 8", checker)
	}

	// 检查器规则必须覆盖全部8条可行性规则
	for _, name := range []string{
		model.RuleRequestOff, model.RuleRequestAvoidShift, model.RuleAvailability,
		model.RuleTargetVariance, model.RuleMaxConsecutive, model.RuleCircadianStrict,
		model.RuleMinRestHours, model.RuleMinDaysOff,
	} {
		if !seen[name] {
			t.Errorf("缺少规则 %s", name)
		}
	}
}
