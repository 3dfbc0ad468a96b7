// Manual probe: trains all four models on a small built-in bilingual
// dataset and classifies a handful of unseen headlines. Useful for
// eyeballing model disagreement without preparing a dataset file.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/baitcheck/internal/compare"
	"github.com/ppiankov/baitcheck/internal/model"
)

var trainingSet = []model.TrainingSample{
	{Text: "Scientists publish new study on regional climate trends", Label: model.LabelNormal},
	{Text: "City council approves budget for road maintenance", Label: model.LabelNormal},
	{Text: "Quarterly earnings report shows modest growth in exports", Label: model.LabelNormal},
	{Text: "Local library extends weekend opening hours", Label: model.LabelNormal},
	{Text: "Researchers map groundwater reserves in the northern basin", Label: model.LabelNormal},
	{Text: "Parliament debates proposed amendments to the transport bill", Label: model.LabelNormal},
	{Text: "国家统计局发布上半年经济运行数据", Label: model.LabelNormal},
	{Text: "市政府召开会议讨论城市交通规划方案", Label: model.LabelNormal},
	{Text: "新一批科研项目获得国家基金资助", Label: model.LabelNormal},
	{Text: "气象部门预计本周末气温小幅下降", Label: model.LabelNormal},

	{Text: "You won't believe what this doctor found in his garage!", Label: model.LabelClickbait},
	{Text: "SHOCKING secret that banks don't want you to know!!!", Label: model.LabelClickbait},
	{Text: "This one weird trick will change your life forever!", Label: model.LabelClickbait},
	{Text: "Act now! Limited time offer you can't miss!!!", Label: model.LabelClickbait},
	{Text: "Top 10 unbelievable facts that will blow your mind!", Label: model.LabelClickbait},
	{Text: "Doctors hate him! Amazing discovery revealed at last!", Label: model.LabelClickbait},
	{Text: "震惊！这个方法让无数人一夜暴富！", Label: model.LabelClickbait},
	{Text: "太可怕了！你绝对想不到的真相！！", Label: model.LabelClickbait},
	{Text: "最后机会！错过再等一年，赶紧看！", Label: model.LabelClickbait},
	{Text: "惊呆了！99%的人都不知道的秘密！", Label: model.LabelClickbait},
}

var probes = []string{
	"震惊！这个方法让你月入十万！",
	"Central bank holds interest rates steady for third quarter",
	"You will NEVER guess what happened next!!!",
	"研究人员发表关于土壤改良的新论文",
}

func main() {
	fmt.Println("=== Baitcheck model comparison demo ===")
	fmt.Println()

	cfg := model.DefaultConfig()
	cfg.Seed = 42
	cfg.Output.Verbose = true

	orch, err := compare.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	fmt.Printf("Training 4 models on %d samples...\n", len(trainingSet))
	start := time.Now()
	metrics, err := orch.TrainAll(ctx, trainingSet, func(t model.ModelType, p model.TrainingProgress) {
		if p.Progress == 0 || p.Progress >= 100 {
			fmt.Printf("  [%s] %-10s %5.1f%%  %s\n", t, p.Stage, p.Progress, p.Message)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "training failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Done in %v\n\n", time.Since(start).Round(time.Millisecond))

	fmt.Println("Per-model metrics")
	fmt.Println(strings.Repeat("-", 60))
	for _, t := range model.AllModelTypes() {
		m := metrics[t]
		if m == nil {
			continue
		}
		fmt.Printf("%-20s acc %.0f%%  f1 %.0f%%  (%v)\n",
			t, m.Accuracy*100, m.F1*100, m.Duration.Round(time.Millisecond))
		if m.Split != nil && m.Split.IsOverfitting {
			fmt.Printf("%-20s ⚠ overfitting: accuracy gap %.2f\n", "", m.Split.AccuracyGap)
		}
	}
	fmt.Println()

	for _, text := range probes {
		fmt.Printf("Text: %q\n", text)
		results, err := orch.PredictAll(ctx, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  prediction failed: %v\n", err)
			continue
		}
		for _, r := range results {
			fmt.Printf("  %-20s %-10s (confidence %.0f%%)\n", r.Model, r.Prediction, r.Confidence*100)
		}
		if c := compare.Consensus(results); c != nil {
			fmt.Printf("  consensus: %s (%.0f%% agreement)\n", c.Prediction, c.Agreement*100)
		}
		fmt.Println()
	}

	summary, err := orch.Summary(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "summary failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Trained models: %d\n", summary.TrainedModels)
	fmt.Printf("Best accuracy:  %s (%.0f%%)\n", summary.BestModel, summary.BestAccuracy*100)
	fmt.Printf("Fastest train:  %s (%v)\n", summary.FastestTrain, summary.FastestTrainT.Round(time.Millisecond))
}
