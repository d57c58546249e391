package services

import (
	"fmt"
	"strconv"
	"strings"

	"dispatch-planner-service/internal/domain"
	"dispatch-planner-service/internal/ports"
)

// Optimization objective requested by the dispatcher.
type PromptMode string

const (
	// Minimize total travel time.
	ModeFastestTime PromptMode = "fastest-time"
	// Minimize total travel distance.
	ModeShortestDistance PromptMode = "shortest-distance"
	// Honor desired arrival/departure times strictly.
	ModeStrictSchedule PromptMode = "strict-schedule"
	// Free-text dispatcher directive takes precedence.
	ModeCustom PromptMode = "custom"
)

// Continuous-driving limit: after Hours of driving a rest of RestMinutes is
// required.
type DriveLimit struct {
	Hours       int
	RestMinutes int
}

type PromptOptions struct {
	Mode     PromptMode
	UseTolls bool
	// nil disables the continuous-driving clause.
	ContinuousDrive *DriveLimit
	// 0 disables the daily duty clause.
	DailyDutyHours  int
	CustomDirective string
}

// Everything the composer needs. Matrix nil means preview mode: the travel
// section renders a placeholder instead of per-pair data.
type PromptInput struct {
	Vehicles    []domain.PlannerVehicle
	Locations   []domain.Location
	Matrix      *ports.TravelMatrix
	Options     PromptOptions
	MinRequired int
	Conflicts   []domain.ConflictPair
}

// ComposePrompt renders the planning request. It is a pure function of its
// input: identical inputs yield byte-identical prompts.
//
// Section order is fixed. The custom directive replaces only the context
// block; the multi-vehicle and ferry sections encode legal and physical
// constraints and are always appended, directive or not.
func ComposePrompt(in PromptInput) string {
	sections := []string{
		roleSection(in),
		multiVehicleSection(),
		ferryRuleSection(),
		ferryRouteSection(),
		vehicleTableSection(in.Vehicles),
		locationTableSection(in.Locations),
		travelSection(in.Locations, in.Matrix),
		outputSpecSection(),
	}
	return strings.Join(sections, "\n")
}

const transportClarification = `## 最重要・輸送方式の明確化
これは片道輸送です。始点から終着点への一方向移動のみを行い、往復・巡回・帰還は一切行いません。
終着地で業務を完了し、始点に戻る必要はありません。

## 交通手段について
移動には自動車(トラック・バン等の道路輸送)を使用してください。必要に応じて船舶(フェリー)との併用も可能です。
ただし、航空便、貨物列車、宅配便等の利用はできません。`

// Role framing plus either the customer directive (custom mode) or the
// constraint-driven context block.
func roleSection(in PromptInput) string {
	var b strings.Builder

	b.WriteString("# 役割\n")
	b.WriteString("あなたは、物流業界で豊富な経験を持つ配車計画の専門家です。\n\n")
	b.WriteString(transportClarification)
	b.WriteString("\n")

	if in.Options.Mode == ModeCustom {
		b.WriteString("\n# 最重要・お客様からの特別なご要望\n")
		b.WriteString("以下のご指示を、他のどのような条件よりも優先して実行してください。\n\n")
		b.WriteString(in.Options.CustomDirective)
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n# 文脈・状況について\n")

	if in.MinRequired > 1 {
		fmt.Fprintf(&b, "重要：時間制約の分析により、最低%d台の車両が必要です。\n", in.MinRequired)
		if len(in.Conflicts) > 0 {
			b.WriteString("以下の時間重複が検出されました：\n")
			for _, c := range in.Conflicts {
				fmt.Fprintf(&b, "- %s(%s-%s)と%s(%s-%s)が重複\n",
					c.A.LocationName, c.A.Arrival.Format("15:04"), c.A.Departure.Format("15:04"),
					c.B.LocationName, c.B.Arrival.Format("15:04"), c.B.Departure.Format("15:04"),
				)
			}
		}
	}

	fmt.Fprintf(&b, "利用可能な%d台の車両から最適な配車計画を立ててください。\n", len(in.Vehicles))

	if in.Options.UseTolls {
		b.WriteString("移動の際は、有料道路も利用して構いません。\n")
	} else {
		b.WriteString("なお、移動時は有料道路を避けるルートでお願いします。\n")
	}

	var labor []string
	if dl := in.Options.ContinuousDrive; dl != nil {
		labor = append(labor, fmt.Sprintf("連続運転時間は%d時間以内（その都度%d分以上の休憩）", dl.Hours, dl.RestMinutes))
	}
	if in.Options.DailyDutyHours > 0 {
		labor = append(labor, fmt.Sprintf("1日の全体拘束時間は%d時間以内", in.Options.DailyDutyHours))
	}
	if len(labor) > 0 {
		b.WriteString("\nドライバーの労働環境にも十分配慮していただき、")
		b.WriteString(strings.Join(labor, "、"))
		b.WriteString("となるよう計画していただけますでしょうか。\n")
	}

	b.WriteString("\n# 今回の計画で最も重視していただきたいポイント\n")
	switch in.Options.Mode {
	case ModeShortestDistance:
		b.WriteString("総走行距離を最小限に抑えることを最優先にお考えください。\n")
	case ModeStrictSchedule:
		b.WriteString("各訪問先の希望到着・出発時刻をできる限り厳守することを最優先にお考えください。\n")
	default:
		b.WriteString("全体の移動時間をできる限り短縮することを最優先にお考えください。\n")
	}

	return b.String()
}

func multiVehicleSection() string {
	return `## 車両使用に関する最重要な指示
- 同時刻に複数地点での作業が必要な場合は、必ず異なる車両に割り当ててください
- 1台の車両が同時に2箇所にいることは物理的に不可能です
- 時間制約により複数車両が必要な場合は、積極的に複数車両を使用してください
- 物理的に不可能なスケジュールの場合は、警告をサマリーに含めてください
`
}

func ferryRuleSection() string {
	return `## 働き方に関する重要規則
### フェリー特例
以下の規則を厳密に遵守してください。
- フェリー乗船時間は、原則として、休息期間として取り扱います。
- フェリー乗船時間が8時間を超える場合には、原則としてフェリー下船時刻から次の勤務が開始される（勤務日がリセットされる）ものとします。この場合、計画が複数日にまたがっても構いません。
- 重要: フェリー乗船中の休憩時間は、具体的な開始時刻と終了時刻を明記してください。
- 例: 11:00乗船、翌日06:00下船の場合 → 23:00-06:00を「フェリー乗船中休息」として明記
`
}

func ferryRouteSection() string {
	return `### 重要：実在する交通インフラのみ使用
絶対に架空の港や航路を作らないでください。
実在するフェリー航路のみ：
- 本州↔北海道: 大間港↔函館港（1時間30分）、青森港↔函館港（3時間40分）、八戸港↔苫小牧港（8時間）
- 本州↔九州: 別府港↔八幡浜港、新門司港↔大阪南港
- 本州↔四国: 高松港↔宇野港、小豆島航路
重要: 東京↔札幌の直通フェリーは存在しません。北海道への移動は陸路で本州フェリー港まで移動後、フェリーで北海道の港へ、その後陸路で目的地という経路になります。
札幌港、東京港などの架空の港は絶対に使用しないでください。
`
}

func vehicleTableSection(vehicles []domain.PlannerVehicle) string {
	var b strings.Builder
	b.WriteString("## 利用可能な車両情報\n")
	b.WriteString("| 車両ID | 車種名 | 最大積載重量(kg) | 最大積載容量(m3) |\n")
	b.WriteString("|:--|:--|:--|:--|\n")
	for _, v := range vehicles {
		fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", v.ID, v.TypeName, v.MaxWeightKg, v.MaxVolumeM3)
	}
	return b.String()
}

// The remarks column is a human-only field and is deliberately absent.
func locationTableSection(locations []domain.Location) string {
	var b strings.Builder
	b.WriteString("## 訪問地点の詳細情報\n")
	b.WriteString("| 始点 | 終着 | 地点 | 地点コード | 住所 | 希望到着 | 希望出発 | 積込kg | 積込m3 | 荷卸kg | 荷卸m3 |\n")
	b.WriteString("|:--|:--|:--|:--|:--|:--|:--|:--|:--|:--|:--|\n")
	for _, loc := range locations {
		start, end := "", ""
		if loc.IsStart {
			start = "1"
		}
		if loc.IsEnd {
			end = "2"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			start, end, loc.Name, loc.Code, loc.Address,
			loc.DesiredArrival, loc.DesiredDeparture,
			formatQuantity(loc.LoadWeightKg), formatQuantity(loc.LoadVolumeM3),
			formatQuantity(loc.UnloadWeightKg), formatQuantity(loc.UnloadVolumeM3),
		)
	}
	return b.String()
}

func formatQuantity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Travel data grouped under each origin, one line per OK destination pair.
// Without a matrix (preview mode) a placeholder explains that the data is
// added at execution time.
func travelSection(locations []domain.Location, matrix *ports.TravelMatrix) string {
	var b strings.Builder

	if matrix == nil {
		b.WriteString("## 地点間の移動時間と距離について\n")
		b.WriteString("※実際の実行時には、地図サービスから取得したリアルタイムの交通情報を含む詳細データが追加されます。\n")
		return b.String()
	}

	b.WriteString("## 地点間の移動時間と距離の詳細データ\n")
	for i, origin := range locations {
		if i >= len(matrix.Rows) {
			break
		}
		fmt.Fprintf(&b, "### %s からの移動時間・距離:\n", origin.Name)
		for j, dest := range locations {
			if i == j || j >= len(matrix.Rows[i]) {
				continue
			}
			el := matrix.Rows[i][j]
			if el.Status != ports.ElementStatusOK {
				continue
			}
			fmt.Fprintf(&b, "- %s まで: %s (%s)\n", dest.Name, el.DurationText, el.DistanceText)
		}
	}
	return b.String()
}

func outputSpecSection() string {
	return "# タスク\n" +
		"上記の全ての条件を満たす、最適な片道輸送計画を作成してください。\n" +
		"\n" +
		"# 重要な計画要件\n" +
		"1. 始点拠点への到着: 始点拠点（出発地）にも到着時刻を設定してください（荷物の引き取り作業のため）\n" +
		"2. 適切な休憩: 連続運転時間制限やフェリー特例に応じて、必要な休憩や休息期間を計画に含めてください\n" +
		"3. 全拠点の訪問: 始点から各経由地を通って終着点まで、すべての拠点を効率的に巡回してください\n" +
		"4. 終着点の扱い: 終着点（`終着`フラグが2の地点）の扱いは、入力データに従ってください\n" +
		"5. 最重要・時間制約の厳守: 同時刻に複数地点での作業が必要な場合は、必ず複数車両を使用してください\n" +
		"\n" +
		"# 出力形式についてのお願い\n" +
		"1. まず最初に、計画全体の要点を簡潔にまとめたサマリーコメントを日本語で記述してください。\n" +
		"   - 複数車両が必要な理由がある場合は、その旨と根拠をサマリーに必ず含めてください\n" +
		"   - 物理的に不可能な時間指定がある場合は、警告をサマリーに必ず含めてください\n" +
		"   - フェリー特例を適用した場合（例：乗船時間を休息期間とした、勤務をリセットした等）は、その旨と法的根拠をサマリーに必ず含めてください\n" +
		"2. 次に、必ず改行して区切り線`---`を一行だけ出力してください。\n" +
		"3. 最後に、運行計画の詳細をJSONオブジェクトのリストとして出力してください。\n" +
		"4. 最重要: JSONの各オブジェクトには、必ず `d`, `proposed_time`, `desired_time`, `time_difference`, `status`, `location_id`, `name_code`, `location_name`, `remarks` のキーをすべて含めてください。値がない場合は空文字 `\"\"` を入れること。\n" +
		"5. `status` キーの値は、必ず「出発」「到着」「移動」「滞在」「休憩」「フェリー乗船」「フェリー移動」「フェリー下船」「フェリー乗船中休息」のいずれかを使用すること。\n" +
		"6. 始点拠点には「到着」ステータスを必ず含めること（荷物引き取りのため）\n" +
		"7. 必要に応じて「休憩」やフェリー関連のステータスを適切に配置すること。\n" +
		"\n" +
		"```json\n" +
		"[\n" +
		"    {\n" +
		"        \"d\": \"トラック1\",\n" +
		"        \"proposed_time\": \"YYYY/MM/DD HH:MM\",\n" +
		"        \"desired_time\": \"YYYY/MM/DD HH:MM\",\n" +
		"        \"time_difference\": \"HH:MM\",\n" +
		"        \"status\": \"到着\",\n" +
		"        \"location_id\": \"\",\n" +
		"        \"name_code\": \"地点コード\",\n" +
		"        \"location_name\": \"地点名\",\n" +
		"        \"remarks\": \"始点拠点への到着（荷物引き取り）\"\n" +
		"    }\n" +
		"]\n" +
		"```"
}
