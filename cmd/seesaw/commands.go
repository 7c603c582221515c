package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/seesaw/internal/balance"
	"github.com/san-kum/seesaw/internal/config"
	"github.com/san-kum/seesaw/internal/export"
	"github.com/san-kum/seesaw/internal/gui"
	"github.com/san-kum/seesaw/internal/present"
	"github.com/san-kum/seesaw/internal/seesaw"
	"github.com/san-kum/seesaw/internal/storage"
	"github.com/san-kum/seesaw/internal/tui"
	"github.com/spf13/cobra"
)

var (
	title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	muted = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cfg, sessionOptions{sound: true})
	if err != nil {
		return err
	}
	defer s.Close()
	return tui.Run(s.ctrl, s.queue, tui.Options{
		Tilt:  cfg.Timing.Tilt,
		Frame: cfg.FrameInterval(),
		Theme: cfg.Theme,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cfg, sessionOptions{sound: true})
	if err != nil {
		return err
	}
	defer s.Close()
	gui.Run(s.ctrl, s.queue, cfg.Timing.Tilt, cfg.Timing.FrameRate)
	return nil
}

func runDrop(cmd *cobra.Command, args []string) error {
	pos, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid position %q: %w", args[0], err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cfg, sessionOptions{presenter: seesaw.NopPresenter{}})
	if err != nil {
		return err
	}
	defer s.Close()

	var obj seesaw.WeightedObject
	if weight != 0 {
		obj, err = s.ctrl.DropWeighted(pos, weight)
	} else {
		obj, err = s.ctrl.Drop(pos)
	}
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timing.Fall+time.Second)
	defer cancel()
	if err := s.ctrl.Settle(ctx); err != nil {
		return fmt.Errorf("object did not land: %w", err)
	}

	st := s.ctrl.Snapshot()
	fmt.Printf("dropped %s at %.1f\n", present.Label(obj.Weight), obj.Position)
	printTotals(st)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cfg, sessionOptions{presenter: seesaw.NopPresenter{}})
	if err != nil {
		return err
	}
	defer s.Close()
	s.ctrl.Reset()
	fmt.Println("seesaw reset")
	return nil
}

func openStore(cfg *config.Config) (*storage.Store, func(), error) {
	blob, err := storage.Open(cfg.Backend, cfg.AppName, cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewStore(blob), func() { blob.Close() }, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	st, ok, err := store.Load()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("no saved state")
		return nil
	}

	fmt.Println(title.Render("seesaw") + "  " + muted.Render("backend "+cfg.Backend))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWEIGHT\tPOSITION\tSIDE\tTORQUE")
	for _, o := range st.Objects {
		side := "right"
		if balance.IsLeft(o.Position) {
			side = "left"
		}
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t%.0f\n",
			o.ID, present.Label(o.Weight), o.Position, side, balance.Torque(o.Balance()))
	}
	w.Flush()

	fmt.Println()
	printTotals(st)
	return nil
}

func printTotals(st seesaw.State) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "left\t%s\ttorque %.0f\n", present.FormatWeight(st.LeftWeight), st.LeftTorque)
	fmt.Fprintf(w, "right\t%s\ttorque %.0f\n", present.FormatWeight(st.RightWeight), st.RightTorque)
	fmt.Fprintf(w, "angle\t%s\t\n", present.FormatAngle(st.Angle))
	fmt.Fprintf(w, "next\t%s\t\n", present.Label(st.NextWeight))
	w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var data []byte
	switch format {
	case "json":
		raw, ok, err := store.Raw()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no saved state")
		}
		data = raw
	case "svg":
		st, ok, err := store.Load()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no saved state")
		}
		data = []byte(export.StateToSVG(st, cfg.SeesawGeometry()))
	default:
		return fmt.Errorf("unknown format: %s (available: json, svg)", format)
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, data, 0644); err != nil {
			return err
		}
		fmt.Printf("exported %s to %s\n", storage.StateKey, outFile)
		return nil
	}
	fmt.Println(string(data))
	return nil
}

type scriptedDrop struct {
	position float64
	weight   int
}

// parseDrops reads "position:weight" pairs. A bare position uses the
// generated next weight.
func parseDrops(args []string) ([]scriptedDrop, error) {
	drops := make([]scriptedDrop, 0, len(args))
	for _, arg := range args {
		posStr, weightStr, hasWeight := strings.Cut(arg, ":")
		pos, err := strconv.ParseFloat(posStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid position in %q: %w", arg, err)
		}
		d := scriptedDrop{position: pos}
		if hasWeight {
			w, err := strconv.Atoi(weightStr)
			if err != nil {
				return nil, fmt.Errorf("invalid weight in %q: %w", arg, err)
			}
			if !balance.ValidWeight(w) {
				return nil, fmt.Errorf("weight %d in %q outside [%d, %d]", w, arg, balance.MinWeight, balance.MaxWeight)
			}
			d.weight = w
		}
		drops = append(drops, d)
	}
	return drops, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	drops, err := parseDrops(args)
	if err != nil {
		return err
	}
	fall, err := time.ParseDuration(fallTime)
	if err != nil || fall <= 0 {
		return fmt.Errorf("invalid fall duration %q", fallTime)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Backend = storage.BackendMemory
	cfg.Timing.Cooldown = 0
	cfg.Timing.Fall = fall

	s, err := openSession(cfg, sessionOptions{presenter: seesaw.NopPresenter{}})
	if err != nil {
		return err
	}
	defer s.Close()

	angles := []float64{0}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tWEIGHT\tPOSITION\tANGLE\tRESULT")
	for i, d := range drops {
		var obj seesaw.WeightedObject
		if d.weight != 0 {
			obj, err = s.ctrl.DropWeighted(d.position, d.weight)
		} else {
			obj, err = s.ctrl.Drop(d.position)
		}
		if err != nil {
			fmt.Fprintf(w, "%d\t-\t%.1f\t%s\t%v\n", i+1, d.position, present.FormatAngle(s.ctrl.Angle()), err)
			continue
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), fall+time.Second)
		err = s.ctrl.Settle(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d did not land: %w", i+1, err)
		}

		angle := s.ctrl.Angle()
		angles = append(angles, angle)
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\tattached\n", i+1, present.Label(obj.Weight), obj.Position, present.FormatAngle(angle))
	}
	w.Flush()
	fmt.Println()

	graph := asciigraph.Plot(angles,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.LowerBound(-balance.MaxAngle),
		asciigraph.UpperBound(balance.MaxAngle),
		asciigraph.Caption("tilt angle after each drop"),
	)
	fmt.Println(graph)
	fmt.Println()
	printTotals(s.ctrl.Snapshot())

	if svgFile != "" {
		if err := writeAngleSVG(svgFile, angles); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgFile)
	}
	return nil
}

var errNothingToPlot = errors.New("no drops attached; nothing to plot")

// writeAngleSVG plots the tilt series. The series starts at the flat bar,
// so it needs at least one landed drop to draw a line.
func writeAngleSVG(path string, angles []float64) error {
	if len(angles) < 2 {
		return errNothingToPlot
	}
	return os.WriteFile(path, []byte(export.AnglesToSVG(angles, 600, 200, "#00ff88")), 0644)
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBACKEND\tCOOLDOWN\tFALL\tTILT\tSOUND")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		sound := "on"
		if !p.Sound.Enabled {
			sound = "off"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			name, p.Backend, p.Timing.Cooldown, p.Timing.Fall, p.Timing.Tilt, sound)
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "seesaw.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
