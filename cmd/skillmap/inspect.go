package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/skillmap"
)

var (
	mutedColor     = lipgloss.Color("#94a3b8")
	importantColor = lipgloss.Color("#f59e0b")
	dynamicColor   = lipgloss.Color("#ef4444")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f1f5f9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	importantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(importantColor)

	dynamicStyle = lipgloss.NewStyle().
			Foreground(dynamicColor)

	islandBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [source]",
	Short: "Print a summary of a skills document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		source := cfg.Source
		if len(args) > 0 {
			source = args[0]
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		doc, err := skillmap.NewLoader().Load(ctx, source)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderInspect(source, doc))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// colorHex formats a map color for lipgloss, ignoring alpha.
func colorHex(c skillmap.Color) lipgloss.Color {
	to8 := func(v float64) int { return int(v*255 + 0.5) }
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B)))
}

// renderInspect lays out one bordered box per island in document order.
func renderInspect(source string, doc *skillmap.Document) string {
	var blocks []string
	blocks = append(blocks, headerStyle.Render(source)+" "+
		mutedStyle.Render(fmt.Sprintf("%d islands, %d skills", len(doc.Islands), doc.SkillCount())))

	for _, is := range doc.Islands {
		fg, _ := skillmap.ParseColorToken(is.Color)
		title := lipgloss.NewStyle().Bold(true).Foreground(colorHex(fg)).Render(is.Name)

		var lines []string
		meta := fmt.Sprintf("width %d, %d skills", is.Width, len(is.Skills))
		if is.Placeholder {
			meta += ", placeholder"
		}
		lines = append(lines, title+"  "+mutedStyle.Render(meta))

		for _, s := range is.Skills {
			line := "  " + s.Name
			if s.Placeholder {
				line = mutedStyle.Render("  (empty)")
			}
			var tags []string
			if s.Important {
				tags = append(tags, importantStyle.Render(skillmap.BadgeImportant))
			}
			if s.Dynamic {
				tags = append(tags, dynamicStyle.Render(skillmap.BadgeDynamic))
			}
			if len(tags) > 0 {
				line += "  " + strings.Join(tags, " ")
			}
			lines = append(lines, line)
		}

		bg, _ := skillmap.ParseColorToken(is.Background)
		box := islandBoxStyle.BorderForeground(colorHex(bg))
		blocks = append(blocks, box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
