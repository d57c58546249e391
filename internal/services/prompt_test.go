package services

import (
	"strings"
	"testing"

	"dispatch-planner-service/internal/domain"
	"dispatch-planner-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptInput() PromptInput {
	locations := []domain.Location{
		{
			Name: "サンプル丸の内", Code: "T001", Address: "東京都千代田区丸の内１丁目",
			IsStart:        true,
			DesiredArrival: "2025/06/15 08:30", DesiredDeparture: "2025/06/15 09:00",
			Remarks: "守衛所で入館証を受け取ること",
		},
		{
			Name: "サンプル西新宿", Code: "T002", Address: "東京都新宿区西新宿２丁目",
			DesiredArrival: "2025/06/15 10:00", DesiredDeparture: "2025/06/15 10:30",
			LoadWeightKg: 100, LoadVolumeM3: 1,
			Remarks: "時間厳守",
		},
		{
			Name: "サンプル札幌", Code: "H001", Address: "北海道札幌市中央区北1条西2丁目",
			IsEnd:          true,
			UnloadWeightKg: 100, UnloadVolumeM3: 1,
		},
	}

	vehicles := []domain.PlannerVehicle{
		{ID: "T01", TypeName: "4tトラック", MaxWeightKg: 4000, MaxVolumeM3: 20},
	}

	return PromptInput{
		Vehicles:  vehicles,
		Locations: locations,
		Options: PromptOptions{
			Mode:            ModeFastestTime,
			UseTolls:        true,
			ContinuousDrive: &DriveLimit{Hours: 4, RestMinutes: 30},
			DailyDutyHours:  13,
		},
		MinRequired: 1,
	}
}

func TestComposePromptIsDeterministic(t *testing.T) {
	in := promptInput()
	assert.Equal(t, ComposePrompt(in), ComposePrompt(in))
}

func TestComposePromptSectionOrder(t *testing.T) {
	prompt := ComposePrompt(promptInput())

	markers := []string{
		"# 役割",
		"## 最重要・輸送方式の明確化",
		"# 文脈・状況について",
		"## 車両使用に関する最重要な指示",
		"### フェリー特例",
		"### 重要：実在する交通インフラのみ使用",
		"## 利用可能な車両情報",
		"## 訪問地点の詳細情報",
		"## 地点間の移動時間と距離について",
		"# タスク",
		"# 出力形式についてのお願い",
	}

	last := -1
	for _, m := range markers {
		idx := strings.Index(prompt, m)
		require.GreaterOrEqual(t, idx, 0, "marker %q missing", m)
		require.Greater(t, idx, last, "marker %q out of order", m)
		last = idx
	}
}

func TestComposePromptExcludesInternalFields(t *testing.T) {
	in := promptInput()
	prompt := ComposePrompt(in)

	// Location remarks are human-only.
	assert.NotContains(t, prompt, "守衛所で入館証を受け取ること")
	assert.NotContains(t, prompt, "時間厳守")
	// The location data itself is present, with role flags rendered.
	assert.Contains(t, prompt, "| 1 |  | サンプル丸の内 |")
	assert.Contains(t, prompt, "|  | 2 | サンプル札幌 |")
	assert.Contains(t, prompt, "サンプル西新宿")
	assert.Contains(t, prompt, "東京都千代田区丸の内１丁目")
}

func TestComposePromptEnumeratesConflicts(t *testing.T) {
	in := promptInput()
	min, conflicts := AnalyzeVehicleRequirements([]domain.Location{
		loc("丸の内", "2025/06/15 09:00", "2025/06/15 10:00"),
		loc("西新宿", "2025/06/15 09:30", "2025/06/15 10:30"),
	})
	in.MinRequired = min
	in.Conflicts = conflicts

	prompt := ComposePrompt(in)
	assert.Contains(t, prompt, "最低2台の車両が必要です")
	assert.Contains(t, prompt, "丸の内(09:00-10:00)と西新宿(09:30-10:30)が重複")
}

func TestComposePromptLaborClauses(t *testing.T) {
	in := promptInput()
	prompt := ComposePrompt(in)
	assert.Contains(t, prompt, "連続運転時間は4時間以内")
	assert.Contains(t, prompt, "1日の全体拘束時間は13時間以内")

	in.Options.ContinuousDrive = nil
	in.Options.DailyDutyHours = 0
	prompt = ComposePrompt(in)
	assert.NotContains(t, prompt, "連続運転時間は")
	assert.NotContains(t, prompt, "1日の全体拘束時間は")
	assert.NotContains(t, prompt, "ドライバーの労働環境")
}

func TestComposePromptTollPreference(t *testing.T) {
	in := promptInput()
	assert.Contains(t, ComposePrompt(in), "有料道路も利用して構いません")

	in.Options.UseTolls = false
	assert.Contains(t, ComposePrompt(in), "有料道路を避けるルート")
}

func TestComposePromptObjectiveByMode(t *testing.T) {
	in := promptInput()

	in.Options.Mode = ModeFastestTime
	assert.Contains(t, ComposePrompt(in), "全体の移動時間をできる限り短縮する")

	in.Options.Mode = ModeShortestDistance
	assert.Contains(t, ComposePrompt(in), "総走行距離を最小限に抑える")

	in.Options.Mode = ModeStrictSchedule
	assert.Contains(t, ComposePrompt(in), "希望到着・出発時刻をできる限り厳守する")
}

func TestComposePromptCustomDirectiveKeepsHardConstraints(t *testing.T) {
	in := promptInput()
	in.Options.Mode = ModeCustom
	in.Options.CustomDirective = "午前中は住宅地を優先し、午後は商業地を回ってください。"

	prompt := ComposePrompt(in)

	assert.Contains(t, prompt, "午前中は住宅地を優先し、午後は商業地を回ってください。")
	assert.Contains(t, prompt, "# 最重要・お客様からの特別なご要望")
	// The context block is replaced by the directive...
	assert.NotContains(t, prompt, "# 文脈・状況について")
	// ...but the legal/safety sections survive.
	assert.Contains(t, prompt, "### フェリー特例")
	assert.Contains(t, prompt, "## 車両使用に関する最重要な指示")
	assert.Contains(t, prompt, "東京↔札幌の直通フェリーは存在しません")
}

func TestComposePromptTravelSectionModes(t *testing.T) {
	in := promptInput()

	// Preview mode: placeholder, no per-pair lines.
	preview := ComposePrompt(in)
	assert.Contains(t, preview, "詳細データが追加されます")
	assert.NotContains(t, preview, "まで: ")

	// Execution mode: per-pair lines for OK elements only.
	in.Matrix = &ports.TravelMatrix{
		Status: "OK",
		Rows: [][]ports.MatrixElement{
			{
				{Status: "OK"},
				{Status: "OK", DurationText: "30分", DistanceText: "12 km"},
				{Status: "ZERO_RESULTS"},
			},
			{
				{Status: "OK", DurationText: "32分", DistanceText: "12 km"},
				{Status: "OK"},
				{Status: "OK", DurationText: "18時間", DistanceText: "1,150 km"},
			},
			{
				{Status: "ZERO_RESULTS"},
				{Status: "OK", DurationText: "18時間", DistanceText: "1,150 km"},
				{Status: "OK"},
			},
		},
	}

	prompt := ComposePrompt(in)
	assert.Contains(t, prompt, "### サンプル丸の内 からの移動時間・距離:")
	assert.Contains(t, prompt, "- サンプル西新宿 まで: 30分 (12 km)")
	assert.Contains(t, prompt, "- サンプル札幌 まで: 18時間 (1,150 km)")
	// ZERO_RESULTS pairs are omitted.
	assert.NotContains(t, prompt, "丸の内 まで: 18時間")
}

func TestComposePromptOutputContract(t *testing.T) {
	prompt := ComposePrompt(promptInput())

	for _, key := range []string{"`d`", "`proposed_time`", "`desired_time`", "`time_difference`", "`status`", "`location_id`", "`name_code`", "`location_name`", "`remarks`"} {
		assert.Contains(t, prompt, key)
	}
	assert.Contains(t, prompt, "区切り線`---`")
	assert.Contains(t, prompt, "「出発」「到着」「移動」「滞在」「休憩」「フェリー乗船」「フェリー移動」「フェリー下船」「フェリー乗船中休息」")
}
