package signals

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// Reliability labels
const (
	ReliabilityHigh   = "AFFIDABILE"
	ReliabilityMedium = "MEDIO"
	ReliabilityLow    = "INSTABILE"
)

// Trend arrows
const (
	TrendUp   = "↑"
	TrendFlat = "→"
	TrendDown = "↓"
)

// DefaultReliabilityMinSamples is the sample size from which league calibration is trusted
const DefaultReliabilityMinSamples = 80

// Trend significance thresholds
const (
	trendMinDeltaAccuracy = 0.01
	trendMinDeltaECE      = 0.005
)

// Badge thresholds
const (
	topProbability     = 0.70
	confBadgeThreshold = 0.75
	imminentMinutes    = 15
)

var liveStatuses = map[string]bool{
	"LIVE":    true,
	"IN_PLAY": true,
	"INPLAY":  true,
	"1H":      true,
	"HT":      true,
	"2H":      true,
	"ET":      true,
	"BT":      true,
	"P":       true,
}

// BadgeContext carries the side feeds and clock used to build a badge list
type BadgeContext struct {
	Now               time.Time
	Location          *time.Location
	Calibration       *models.CalibrationStats // league-level
	GlobalCalibration *models.CalibrationStats
	Trend             *models.TrendStats
	MinSamples        int
}

// reliabilityFromStats grades calibration quality
func reliabilityFromStats(s models.CalibrationStats) string {
	switch {
	case s.ECE <= 0.05 && s.Accuracy >= 0.50:
		return ReliabilityHigh
	case s.ECE > 0.10 || s.Accuracy < 0.40:
		return ReliabilityLow
	default:
		return ReliabilityMedium
	}
}

// Reliability uses league calibration once it has enough samples, else the global fallback.
// It returns "" when neither is available.
func Reliability(league, global *models.CalibrationStats, minSamples int) string {
	if minSamples <= 0 {
		minSamples = DefaultReliabilityMinSamples
	}
	if league != nil && league.N >= minSamples {
		return reliabilityFromStats(*league)
	}
	if global != nil {
		return reliabilityFromStats(*global)
	}
	return ""
}

// TrendArrow compares the 7-day window to the 30-day window. Both accuracy and ECE
// must move significantly in the same direction (accuracy up and ECE down, or the reverse).
func TrendArrow(t *models.TrendStats) string {
	if t == nil || !t.OK {
		return ""
	}
	accUp := t.DeltaAccuracy >= trendMinDeltaAccuracy
	accDown := t.DeltaAccuracy <= -trendMinDeltaAccuracy
	eceDown := t.DeltaECE <= -trendMinDeltaECE
	eceUp := t.DeltaECE >= trendMinDeltaECE

	switch {
	case accUp && eceDown:
		return TrendUp
	case accDown && eceUp:
		return TrendDown
	default:
		return TrendFlat
	}
}

// IsLive uses the explicit flag, the status string or a positive match minute
func IsLive(m *models.Match) bool {
	if m == nil {
		return false
	}
	if m.IsLive != nil && *m.IsLive {
		return true
	}
	if liveStatuses[strings.ToUpper(strings.TrimSpace(m.Status))] {
		return true
	}
	return m.Minute != nil && *m.Minute > 0
}

// Kickoff returns the kickoff time, false when unknown
func Kickoff(m *models.Match) (time.Time, bool) {
	if m == nil || m.KickoffUnix == nil {
		return time.Time{}, false
	}
	return time.Unix(*m.KickoffUnix, 0), true
}

// DayLabel is OGGI for today, DOMANI for tomorrow and dd-mm otherwise
func DayLabel(kickoff, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	k := kickoff.In(loc)
	n := now.In(loc)

	ky, km, kd := k.Date()
	ny, nm, nd := n.Date()
	kDay := time.Date(ky, km, kd, 0, 0, 0, 0, loc)
	nDay := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)

	switch {
	case kDay.Equal(nDay):
		return "OGGI"
	case kDay.Equal(nDay.AddDate(0, 0, 1)):
		return "DOMANI"
	default:
		return k.Format("02-01")
	}
}

// KickoffLabel is TRA POCO within 15 minutes of kickoff, else a +Xm/+Xh countdown.
// Past kickoffs return "".
func KickoffLabel(kickoff, now time.Time) string {
	mins := int(math.Floor(kickoff.Sub(now).Minutes()))
	switch {
	case mins < 0:
		return ""
	case mins <= imminentMinutes:
		return "TRA POCO"
	case mins < 60:
		return fmt.Sprintf("+%dm", mins)
	default:
		return fmt.Sprintf("+%dh", mins/60)
	}
}

// BadgeList builds the badge list of a match, highest priority first
func BadgeList(m *models.Match, bc BadgeContext) []models.Badge {
	var badges []models.Badge
	prepend := func(kind models.BadgeKind, label string) {
		if label == "" {
			return
		}
		badges = append([]models.Badge{{Kind: kind, Label: label}}, badges...)
	}
	add := func(kind models.BadgeKind, label string) {
		badges = append(badges, models.Badge{Kind: kind, Label: label})
	}

	prepend(models.BadgeReliability, Reliability(bc.Calibration, bc.GlobalCalibration, bc.MinSamples))
	prepend(models.BadgeTrend, TrendArrow(bc.Trend))

	if ch := ChaosOf(m); ch != nil {
		prepend(models.BadgeChaos, chaosLabel(ChaosSeverityFor(ch.Index)))
		if ch.Upset {
			prepend(models.BadgeUpset, "UPSET")
		}
	}

	kickoff, hasKickoff := Kickoff(m)
	if hasKickoff && !bc.Now.IsZero() {
		prepend(models.BadgeDay, DayLabel(kickoff, bc.Now, bc.Location))
	}

	if IsLive(m) {
		add(models.BadgeLive, "LIVE")
	}
	if BestProbability(m) >= topProbability {
		add(models.BadgeTop, "TOP")
	}
	if Confidence(m) >= confBadgeThreshold {
		add(models.BadgeConf, "CONF")
	}
	if IsNoBet(m) {
		add(models.BadgeNoBet, "NO BET")
	}
	if hasKickoff && !bc.Now.IsZero() {
		if label := KickoffLabel(kickoff, bc.Now); label != "" {
			add(models.BadgeKickoff, label)
		}
	}

	return badges
}
