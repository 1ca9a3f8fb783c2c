package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Slepzs/oizys-keres/internal/config"
	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/handlers"
	"github.com/Slepzs/oizys-keres/internal/ledger"
	"github.com/Slepzs/oizys-keres/internal/sim"
)

var (
	accent    = lipgloss.Color("6")
	highlight = lipgloss.Color("11")
	muted     = lipgloss.Color("245")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(highlight).Bold(true).Underline(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(highlight).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(muted)
	goodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1)
)

const barWidth = 12

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	var body string
	switch m.tab {
	case tabSkills:
		body = m.renderSkills()
	case tabCombat:
		body = m.renderCombat()
	case tabCrafting:
		body = m.renderCrafting()
	case tabBuildings:
		body = m.renderBuildings()
	case tabInventory:
		body = m.renderInventory()
	case tabQuests:
		body = m.renderQuests()
	case tabLog:
		body = m.renderLog()
	}
	b.WriteString(panelStyle.Render(body))
	b.WriteString("\n")

	for _, n := range lastN(handlers.Active(m.state, m.state.LastTickAt), 3) {
		b.WriteString(noteStyle.Render("• " + n.Message))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) balance() config.Balance {
	return m.sess.Engine().Balance
}

func (m Model) renderHeader() string {
	st := m.state
	e := m.sess.Engine()
	xp := ledger.Progress(m.balance().XP.Player, st.Player.Level, st.Player.XP)
	hp := fmt.Sprintf("HP %d/%d", st.Player.CurrentHP, st.Player.MaxHP)
	if st.Player.CurrentHP*4 < st.Player.MaxHP {
		hp = badStyle.Render(hp)
	}
	return fmt.Sprintf("%s  %s  Lv %d %s  %s  Combat Lv %d  Total Lv %d",
		titleStyle.Render("OIZYS"),
		mutedStyle.Render(m.sess.Slot()),
		st.Player.Level, bar(xp, barWidth),
		hp,
		e.CombatLevel(st),
		st.TotalSkillLevel(),
	)
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts = append(parts, activeTabStyle.Render(name))
		} else {
			parts = append(parts, tabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderSkills() string {
	var b strings.Builder
	curve := m.balance().XP.Skill
	for i, def := range m.catalog.Skills {
		sk := m.state.Skills[def.ID]
		line := fmt.Sprintf("%-12s Lv %-3d %s %8s xp", def.Name, sk.Level, bar(ledger.Progress(curve, sk.Level, sk.XP), barWidth), humanize.Comma(int64(sk.XP)))
		var tags []string
		if def.Kind == content.KindCrafting {
			tags = append(tags, "crafting")
		} else {
			if m.state.ActiveSkill == def.ID {
				tags = append(tags, goodStyle.Render("training"))
			}
			switch {
			case sk.AutomationEnabled:
				tags = append(tags, goodStyle.Render("auto"))
			case !sk.AutomationUnlocked && def.AutomationUnlockLevel > 0:
				tags = append(tags, mutedStyle.Render(fmt.Sprintf("auto at %d", def.AutomationUnlockLevel)))
			}
			if v, ok := def.Variant(sk.ActiveVariant); ok {
				tags = append(tags, v.Name)
			}
		}
		b.WriteString(cursorLine(i == m.cursor, line+"  "+strings.Join(tags, " ")))
	}

	b.WriteString("\n")
	for _, def := range m.catalog.Resources {
		r := m.state.Resources[def.ID]
		if r.Amount == 0 {
			continue
		}
		amount := humanize.Comma(int64(r.Amount))
		if r.Cap > 0 {
			amount += " / " + humanize.Comma(int64(r.Cap))
		}
		fmt.Fprintf(&b, "  %-14s %s\n", def.Name, amount)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderCombat() string {
	var b strings.Builder
	e := m.sess.Engine()
	st := m.state

	fmt.Fprintf(&b, "Offense %d  Defense %d  Attack every %.1fs  Training: %s  Auto-fight: %s\n",
		e.PlayerOffense(st), e.PlayerDefense(st),
		float64(e.PlayerAttackInterval(st))/1000,
		st.Combat.TrainingMode, onOff(st.Combat.AutoFight),
	)
	curve := m.balance().XP.Combat
	for _, def := range m.catalog.CombatSkills {
		sk := st.CombatSkills[def.ID]
		fmt.Fprintf(&b, "  %-10s Lv %-3d %s\n", def.Name, sk.Level, bar(ledger.Progress(curve, sk.Level, sk.XP), barWidth))
	}

	b.WriteString("\n")
	if ac := st.ActiveCombat; ac != nil {
		enemy, _ := m.catalog.Enemy(ac.EnemyID)
		fmt.Fprintf(&b, "Fighting %s  HP %d/%d %s\n\n",
			cursorStyle.Render(enemy.Name), ac.EnemyCurrentHP, enemy.HP,
			bar(float64(ac.EnemyCurrentHP)/float64(max(1, enemy.HP)), barWidth))
	}

	level := e.CombatLevel(st)
	for i, zone := range m.catalog.Zones {
		names := make([]string, 0, len(zone.Enemies))
		for _, id := range zone.Enemies {
			enemy, _ := m.catalog.Enemy(id)
			names = append(names, enemy.Name)
		}
		line := fmt.Sprintf("%-14s req %-3d %s", zone.Name, zone.RequiredCombatLevel, strings.Join(names, ", "))
		if level < zone.RequiredCombatLevel {
			line = mutedStyle.Render(line)
		}
		b.WriteString(cursorLine(i == m.cursor, line))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderCrafting() string {
	var b strings.Builder
	e := m.sess.Engine()
	ca := m.state.CraftingAutomation
	for i, r := range m.catalog.Recipes {
		inputs := make([]string, 0, len(r.Inputs))
		for _, in := range r.Inputs {
			inputs = append(inputs, m.ingredientText(in, true))
		}
		line := fmt.Sprintf("%-14s Lv %-3d %s -> %s", r.Name, r.RequiredLevel, strings.Join(inputs, " + "), m.ingredientText(r.Output, false))
		if req := r.Infrastructure; req != nil && m.state.Infrastructure[req.ID] < req.Level {
			building, _ := m.catalog.Building(req.ID)
			line = mutedStyle.Render(line + fmt.Sprintf("  needs %s %d", building.Name, req.Level))
		}
		if ca.Enabled && ca.RecipeID == r.ID {
			per := e.EffectiveTicksPerCraft(m.state, r)
			line += "  " + goodStyle.Render("auto") + " " + bar(ca.TickProgress/max(per, 1), 6)
			if ca.Stalled {
				line += " " + badStyle.Render("stalled")
			}
		}
		b.WriteString(cursorLine(i == m.cursor, line))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderBuildings() string {
	var b strings.Builder
	for i, def := range m.catalog.Infrastructure {
		level := m.state.Infrastructure[def.ID]
		line := fmt.Sprintf("%-12s Lv %d/%d", def.Name, level, def.MaxLevel)
		if def.MaxLevel > 0 && level >= def.MaxLevel {
			line += "  " + goodStyle.Render("max")
		} else {
			cost := sim.UpgradeCost(def, level+1)
			parts := make([]string, 0, len(cost))
			for _, in := range cost {
				parts = append(parts, m.ingredientText(in, true))
			}
			line += "  next: " + strings.Join(parts, ", ")
		}
		b.WriteString(cursorLine(i == m.cursor, line))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderInventory() string {
	bag := m.state.Inventory
	header := fmt.Sprintf("Bag %d/%d", len(bag.Items), bag.Slots)
	if bag.Full() {
		header = badStyle.Render(header + " full")
	}
	if len(bag.Items) == 0 {
		return header + "\n\n" + mutedStyle.Render("Nothing yet.")
	}
	return header + "\n" + m.items.View()
}

func (m Model) renderQuests() string {
	var b strings.Builder
	for i, q := range m.catalog.Quests {
		p := m.state.Quests[q.ID]
		var line string
		switch {
		case p.Completed:
			line = goodStyle.Render("✓ " + q.Name)
		case !m.questUnlocked(q):
			line = mutedStyle.Render("  " + q.Name + " (locked)")
		default:
			line = fmt.Sprintf("  %-20s %d/%d %s", q.Name, p.Progress, q.Objective.Count,
				bar(float64(p.Progress)/float64(max(1, q.Objective.Count)), barWidth))
		}
		b.WriteString(cursorLine(i == m.cursor, line))
	}

	b.WriteString("\nAchievements\n")
	for _, a := range m.catalog.Achievements {
		if m.state.Achievements[a.ID] {
			b.WriteString(goodStyle.Render("  ★ " + a.Name))
		} else {
			b.WriteString(mutedStyle.Render("  ☆ " + a.Name))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) questUnlocked(q content.QuestDef) bool {
	for _, id := range q.Requires {
		if !m.state.Quests[id].Completed {
			return false
		}
	}
	return true
}

func (m Model) renderLog() string {
	lines := m.sess.Log(max(5, m.config.ScreenH-12))
	if len(lines) == 0 {
		return mutedStyle.Render("Nothing has happened yet.")
	}
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%s  %s\n", mutedStyle.Render(time.UnixMilli(l.At).Format("15:04:05")), l.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ingredientText names an ingredient, optionally with how many are held.
func (m Model) ingredientText(in content.Ingredient, held bool) string {
	name, have := in.Resource, 0
	if in.Resource != "" {
		if def, ok := m.catalog.Resource(in.Resource); ok {
			name = def.Name
		}
		have = m.state.ResourceAmount(in.Resource)
	} else {
		name = in.Item
		if def, ok := m.catalog.Item(in.Item); ok {
			name = def.Name
		}
		have = m.state.Inventory.Count(in.Item)
	}
	text := fmt.Sprintf("%d %s", in.Quantity, name)
	if !held {
		return text
	}
	if have < in.Quantity {
		return badStyle.Render(fmt.Sprintf("%s (%d)", text, have))
	}
	return text
}

// itemStats summarizes an equippable item.
func itemStats(def content.ItemDef) string {
	var parts []string
	if def.Offense != 0 {
		parts = append(parts, fmt.Sprintf("+%d off", def.Offense))
	}
	if def.Defense != 0 {
		parts = append(parts, fmt.Sprintf("+%d def", def.Defense))
	}
	if def.AttackIntervalMs > 0 {
		parts = append(parts, fmt.Sprintf("%.1fs", float64(def.AttackIntervalMs)/1000))
	}
	if bonus := def.Bonus; bonus != nil {
		if bonus.Type == string(core.Multiplicative) {
			parts = append(parts, fmt.Sprintf("x%.2f %s", bonus.Value, bonus.Target))
		} else {
			parts = append(parts, fmt.Sprintf("+%s%% %s", humanize.Ftoa(bonus.Value*100), bonus.Target))
		}
	}
	return strings.Join(parts, " ")
}

// welcomeBack describes an offline catch-up, or "" when there was none.
func welcomeBack(res sim.OfflineResult) string {
	if res.ElapsedMs < 60_000 {
		return ""
	}
	away := durationText(res.ElapsedMs)
	if !res.WasCapped {
		return fmt.Sprintf("Welcome back! You were away %s.", away)
	}
	return fmt.Sprintf("Welcome back! You were away %s; %s of progress was credited.", away, durationText(res.CappedMs))
}

func durationText(ms int64) string {
	start := time.Unix(0, 0)
	return strings.TrimSpace(humanize.RelTime(start, start.Add(time.Duration(ms)*time.Millisecond), "", ""))
}

func bar(frac float64, width int) string {
	frac = max(0, min(1, frac))
	filled := int(frac * float64(width))
	return goodStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

func cursorLine(selected bool, text string) string {
	if selected {
		return cursorStyle.Render("> ") + text + "\n"
	}
	return "  " + text + "\n"
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func lastN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
