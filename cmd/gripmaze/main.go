// Command gripmaze runs a NeuroGrip maze session from the terminal: player
// intake, the level progression at the target frame rate, sqlite persistence
// and the end-of-session performance report.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/neurogrip/gripmaze/internal/baseline"
	"github.com/neurogrip/gripmaze/internal/config"
	"github.com/neurogrip/gripmaze/internal/gripdb"
	"github.com/neurogrip/gripmaze/internal/hardware"
	"github.com/neurogrip/gripmaze/internal/report"
	"github.com/neurogrip/gripmaze/internal/session"
)

var (
	configPath   = flag.String("config", "", "Game tuning JSON file (optional)")
	dbFile       = flag.String("db", "gripmaze.db", "Sqlite database file")
	baselineFile = flag.String("baseline", "baseline_thresholds.txt", "Population baseline store")
	serialPort   = flag.String("port", "", "Serial device path (overrides config)")
	fixtures     = flag.String("fixtures", "", "Replay sensor frames from a file instead of hardware")
	outDir       = flag.String("out", ".", "Directory for the report chart and HTML")
	migrationsD  = flag.String("migrations", "", "Apply schema migrations from this directory at startup")
)

// keyHold is how long one typed input line counts as a held key. Terminal
// input is line-oriented, so a press must outlive several 60 Hz frames to
// move the ball a visible distance.
const keyHold = 400 * time.Millisecond

// keypad turns typed lines into key state the frame loop can poll.
type keypad struct {
	mu      sync.Mutex
	keys    session.KeyState
	expires time.Time
	quit    bool
}

func (k *keypad) press(line string, now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.keys = session.KeyState{}
	for _, r := range strings.ToLower(line) {
		switch r {
		case 'a':
			k.keys.Left = true
		case 'd':
			k.keys.Right = true
		case 'w':
			k.keys.Up = true
		case 's':
			k.keys.Down = true
		case 'q':
			k.quit = true
		}
	}
	k.expires = now.Add(keyHold)
}

func (k *keypad) state(now time.Time) session.KeyState {
	k.mu.Lock()
	defer k.mu.Unlock()
	if now.After(k.expires) {
		return session.KeyState{}
	}
	return k.keys
}

func (k *keypad) quitRequested() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.quit
}

// prompt blocks for the next typed line. Returns false when input is closed
// or the context is cancelled.
func prompt(ctx context.Context, lines <-chan string, label string) (string, bool) {
	fmt.Print(label)
	select {
	case line, ok := <-lines:
		return strings.TrimSpace(line), ok
	case <-ctx.Done():
		fmt.Println()
		return "", false
	}
}

func intakePlayer(ctx context.Context, lines <-chan string) (session.Player, bool) {
	name, ok := prompt(ctx, lines, "Player name: ")
	if !ok || name == "" {
		return session.Player{}, false
	}
	gender, ok := prompt(ctx, lines, "Gender: ")
	if !ok {
		return session.Player{}, false
	}

	age := 0
	for {
		raw, ok := prompt(ctx, lines, "Age: ")
		if !ok {
			return session.Player{}, false
		}
		v, err := strconv.Atoi(raw)
		if err == nil && v > 0 {
			age = v
			break
		}
		fmt.Println("Please enter a whole number.")
	}

	userType := session.UserNormal
	raw, ok := prompt(ctx, lines, "Rehabilitation user? [y/N]: ")
	if !ok {
		return session.Player{}, false
	}
	if strings.HasPrefix(strings.ToLower(raw), "y") {
		userType = session.UserRehab
	}

	return session.Player{Name: name, Gender: gender, Age: age, Type: userType}, true
}

// openDevice connects the grip sensor. A fixtures file replays recorded
// frames through the same parser. Returns nil when no source is available,
// which switches the game to keyboard simulation.
func openDevice(port string) *hardware.Device {
	if *fixtures != "" {
		f, err := os.Open(*fixtures)
		if err != nil {
			log.Fatalf("failed to open fixtures file: %v", err)
		}
		log.Printf("replaying sensor frames from %s", *fixtures)
		return hardware.NewDevice(f)
	}

	dev, err := hardware.Open(port)
	if err != nil {
		log.Printf("no grip hardware on %s (%v); keyboard simulation mode", port, err)
		log.Print("steer with w/a/s/d then enter, q to end the session")
		return nil
	}
	log.Printf("grip hardware connected on %s", port)
	return dev
}

// runLevel drives one level attempt at the target frame rate. Returns the
// completed state; false means the session was cut short.
func runLevel(ctx context.Context, ls *session.LevelSession, cfg *config.GameConfig, dev *hardware.Device, pad *keypad, lines <-chan string) bool {
	interval := time.Second / time.Duration(cfg.GetTargetFrameRate())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	hudEvery := cfg.GetTargetFrameRate()
	maxForce := cfg.GetMaxFSRValue()

	var sensor session.SensorSample
	haveSensor := false
	last := time.Now()
	frame := 0

	for {
		select {
		case <-ctx.Done():
			return false
		case line, ok := <-lines:
			if !ok {
				return false
			}
			pad.press(line, time.Now())
			if pad.quitRequested() {
				return false
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			in := session.FrameInput{DT: dt}
			if dev != nil {
				if s, ok := dev.Poll(); ok {
					sensor = s
					haveSensor = true
				}
				if haveSensor {
					in.Sensor = &sensor
				} else {
					in.Sensor = &session.SensorSample{}
				}
			} else {
				in.Keys = pad.state(now)
			}

			res := ls.Frame(in)
			frame++
			if res.Completed {
				return true
			}
			if frame%hudEvery == 0 {
				hud := session.NewGripHUD(res.Force, maxForce, dev != nil)
				fmt.Printf("  pos (%.0f, %.0f)  grip %4.0f [%3.0f%%]  %s\n",
					res.Position.X, res.Position.Y, hud.Force, hud.FillRatio*100, hud.Hardware)
			}
		}
	}
}

func printReport(r *report.Report) {
	fmt.Println()
	fmt.Println("=== Session Report ===")
	fmt.Printf("Player: %s    Session: %s\n\n", r.Player.Name, r.SessionID)

	fmt.Printf("%-10s %10s %12s %10s %10s\n", "Level", "Time (s)", "Collisions", "CoV (%)", "Path Eff")
	for _, lv := range r.Levels {
		fmt.Printf("%-10s %10.1f %12d %10.1f %9.1f%%\n",
			lv.LevelName, lv.DurationSeconds, lv.Collisions, lv.CoV, lv.PathEfficiency)
	}
	fmt.Println()
	fmt.Println(r.Summary)

	if r.Comparison != nil {
		fmt.Println()
		fmt.Printf("%-18s %10s %10s %10s\n", "vs. Baseline", "Yours", "Baseline", "Diff")
		rows := []struct {
			label string
			c     baseline.Comparison
		}{
			{"Grip CoV (%)", r.Comparison.CoV},
			{"Collisions", r.Comparison.Collisions},
			{"Path Eff (%)", r.Comparison.PathEfficiency},
		}
		for _, row := range rows {
			fmt.Printf("%-18s %10.1f %10.1f %+10.1f\n",
				row.label, row.c.Yours, row.c.Baseline, row.c.Difference)
		}
	} else if r.Player.Type == session.UserRehab {
		fmt.Println("\nNo population baseline recorded yet; comparison unavailable.")
	}
}

func printHistory(h *gripdb.PlayerHistory) {
	if h.TotalSessions == 0 {
		return
	}
	fmt.Printf("\nHistory: %d sessions, %d levels, %.0f s played, %.1f collisions/level, grip CoV %.1f%%\n",
		h.TotalSessions, h.TotalLevelsPlayed, h.TotalPlaytimeSeconds, h.AvgCollisionsPerLvl, h.AvgGripCoV)
}

func main() {
	flag.Parse()

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadGameConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if *serialPort != "" {
		cfg.SerialPort = serialPort
	}

	db, err := gripdb.NewGripDB(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if *migrationsD != "" {
		if err := db.MigrateUp(*migrationsD); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// one reader owns stdin; prompts and the frame loop share the channel
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	player, ok := intakePlayer(ctx, lines)
	if !ok {
		log.Print("intake aborted")
		return
	}
	playerID, err := db.AddPlayer(player.Name, player.Gender, player.Age, player.Type)
	if err != nil {
		log.Fatalf("failed to register player: %v", err)
	}

	dev := openDevice(cfg.GetSerialPort())
	var wg sync.WaitGroup
	if dev != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := dev.Monitor(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("sensor monitor stopped: %v", err)
			}
		}()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sess := session.New(cfg, player, rng)
	dbSessionID, err := db.StartSession(playerID, sess.ID)
	if err != nil {
		log.Fatalf("failed to start session: %v", err)
	}

	pad := &keypad{}
	for {
		ls, err := sess.StartLevel()
		if err != nil {
			break
		}
		fmt.Printf("\n--- Level: %s ---\n", sess.CurrentLevelName())

		if !runLevel(ctx, ls, cfg, dev, pad, lines) {
			log.Print("session ended early")
			break
		}
		m := ls.Metrics()
		fmt.Printf("Level complete in %.1f s with %d collisions.\n", m.DurationSeconds, m.CollisionCount)
		if err := db.SaveLevelResult(dbSessionID, m); err != nil {
			log.Printf("failed to save level result: %v", err)
		}

		if sess.CompleteLevel(m) == session.OutcomeReport {
			break
		}
		answer, ok := prompt(ctx, lines, "Continue to the next level? [Y/n]: ")
		if !ok || strings.HasPrefix(strings.ToLower(answer), "n") {
			break
		}
	}

	stop()
	wg.Wait()

	tracker := baseline.NewTracker(*baselineFile)
	r, err := report.Assemble(player, sess.ID, sess.Completed(), tracker)
	if err != nil {
		if errors.Is(err, report.ErrNoCompletedLevels) {
			fmt.Println("\nNo levels completed; nothing to report.")
			return
		}
		log.Fatalf("failed to assemble report: %v", err)
	}
	printReport(r)

	chartPath := filepath.Join(*outDir, "performance_chart.png")
	if err := report.RenderChart(r.Levels, chartPath); err != nil {
		log.Printf("failed to render chart: %v", err)
	} else {
		fmt.Printf("\nChart saved to %s\n", chartPath)
	}
	htmlPath := filepath.Join(*outDir, "session_report.html")
	if err := report.WriteHTML(r, htmlPath); err != nil {
		log.Printf("failed to write report html: %v", err)
	} else {
		fmt.Printf("Report saved to %s\n", htmlPath)
	}

	if h, err := db.PlayerHistory(playerID); err == nil {
		printHistory(h)
	}
}
