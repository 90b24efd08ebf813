package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/simfra/lingod/internal/model"
	"github.com/simfra/lingod/internal/translations"
	"github.com/simfra/lingod/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printTranslation(t *model.Translation) {
	fmt.Printf("ID:       %d\n", t.ID)
	fmt.Printf("Lang:     %s\n", ui.RenderLocale(t.Lang))
	fmt.Printf("Key:      %s\n", t.Key)
	fmt.Printf("Value:    %s\n", ui.RenderValue(t.Value))
	if t.Readonly {
		fmt.Printf("Readonly: %s\n", ui.RenderReadonly("yes"))
	}
	if !t.UpdatedAt.IsZero() {
		fmt.Printf("Updated:  %s\n", t.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printPageTable(page *translations.Page) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKEY\tVALUE\tRO")
	for _, t := range page.Items {
		value := t.Value
		if len(value) > 60 {
			value = value[:57] + "..."
		}
		if value == "" {
			value = ui.RenderMuted("(untranslated)")
		} else {
			value = ui.RenderValue(value)
		}
		id := "-"
		if t.ID != 0 {
			id = fmt.Sprintf("%d", t.ID)
		}
		ro := ""
		if t.Readonly {
			ro = ui.RenderReadonly("ro")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, t.Key, value, ro)
	}
	w.Flush()

	p := page.Pagination
	fmt.Printf("\n%s: page %d/%d (%d keys)\n",
		ui.RenderLocale(page.Lang), p.CurrentPage, p.LastPage, p.Total)
	if len(page.Groups) > 0 {
		fmt.Println(ui.RenderMuted("groups: " + strings.Join(page.Groups, ", ")))
	}
}

func printLanguagesTable(langs []*model.Language) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tACTIVE")
	for _, l := range langs {
		active := ""
		if l.Active {
			active = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", ui.RenderLocale(l.Code), l.Name, active)
	}
	w.Flush()
}
