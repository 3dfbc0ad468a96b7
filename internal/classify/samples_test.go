package classify

import (
	"github.com/ppiankov/baitcheck/internal/model"
)

// separableSamples returns a bilingual fixture where the two classes differ
// sharply in keyword and punctuation signal.
func separableSamples() []model.TrainingSample {
	return []model.TrainingSample{
		{Text: "Scientists publish new study on regional climate trends", Label: model.LabelNormal},
		{Text: "City council approves budget for road maintenance", Label: model.LabelNormal},
		{Text: "Quarterly earnings report shows modest growth", Label: model.LabelNormal},
		{Text: "Local library extends weekend opening hours", Label: model.LabelNormal},
		{Text: "Researchers map groundwater reserves in the basin", Label: model.LabelNormal},
		{Text: "国家统计局发布上半年经济运行数据", Label: model.LabelNormal},
		{Text: "市政府召开会议讨论交通规划方案", Label: model.LabelNormal},
		{Text: "气象部门预计本周末气温小幅下降", Label: model.LabelNormal},

		{Text: "You won't believe what this doctor found!", Label: model.LabelClickbait},
		{Text: "SHOCKING secret that banks don't want you to know!!!", Label: model.LabelClickbait},
		{Text: "This one weird trick will change your life!", Label: model.LabelClickbait},
		{Text: "Act now! Limited time offer you can't miss!!!", Label: model.LabelClickbait},
		{Text: "震惊！这个方法让无数人一夜暴富！", Label: model.LabelClickbait},
		{Text: "太可怕了！你绝对想不到的真相！！", Label: model.LabelClickbait},
		{Text: "最后机会！错过再等一年，赶紧看！", Label: model.LabelClickbait},
		{Text: "惊呆了！这个秘密99%的人不知道！", Label: model.LabelClickbait},
	}
}

// testConfig returns defaults with a fixed seed so every model trains
// reproducibly.
func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Seed = 42
	return cfg
}
