// Command backup exports one family's data to a JSON file and imports
// it back, remapping row identifiers on the way in.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"famboard/internal/config"
	"famboard/internal/database"
	"famboard/internal/gateway"
)

type backupFile struct {
	ExportedAt time.Time            `json:"exportedAt"`
	Family     gateway.FamilyRow    `json:"family"`
	Profiles   []gateway.ProfileRow `json:"profiles"`
	Messages   []gateway.MessageRow `json:"messages"`
	Tasks      []gateway.TaskRow    `json:"tasks"`
	Logs       []gateway.LogRow     `json:"logs"`
	Buttons    []gateway.ButtonRow  `json:"buttons"`
}

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportFamily := exportCmd.String("family", "", "Family id to export (required)")
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importInput := importCmd.String("input", "", "Input file path (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	gw := gateway.NewSQL(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		if *exportFamily == "" {
			fmt.Println("Error: -family flag is required")
			exportCmd.PrintDefaults()
			os.Exit(1)
		}
		handleExport(ctx, gw, *exportFamily, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, gw, *importInput)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, gw *gateway.SQL, familyID, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	family, err := gw.FamilyByID(ctx, familyID)
	if err != nil {
		log.Fatalf("Failed to read family: %v", err)
	}
	if family == nil {
		log.Fatalf("Family %s not found", familyID)
	}

	backup := backupFile{ExportedAt: time.Now().UTC(), Family: *family}
	if backup.Profiles, err = gw.ProfilesByFamily(ctx, familyID); err != nil {
		log.Fatalf("Failed to read profiles: %v", err)
	}
	if backup.Messages, err = gw.MessagesByFamily(ctx, familyID); err != nil {
		log.Fatalf("Failed to read messages: %v", err)
	}
	if backup.Tasks, err = gw.TasksByFamily(ctx, familyID); err != nil {
		log.Fatalf("Failed to read tasks: %v", err)
	}
	if backup.Logs, err = gw.LogsByFamily(ctx, familyID); err != nil {
		log.Fatalf("Failed to read logs: %v", err)
	}
	if backup.Buttons, err = gw.ButtonsByFamily(ctx, familyID); err != nil {
		log.Fatalf("Failed to read buttons: %v", err)
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode backup: %v", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		log.Fatalf("Failed to write backup: %v", err)
	}

	log.Printf("Export complete: %s (%d profiles, %d messages, %d tasks, %d logs, %d buttons)",
		outputPath, len(backup.Profiles), len(backup.Messages), len(backup.Tasks), len(backup.Logs), len(backup.Buttons))
}

// handleImport recreates the backed-up family under fresh identifiers.
// References between rows are remapped; creation timestamps are
// reassigned by the gateway.
func handleImport(ctx context.Context, gw *gateway.SQL, inputPath string) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("Failed to read backup: %v", err)
	}
	var backup backupFile
	if err := json.Unmarshal(data, &backup); err != nil {
		log.Fatalf("Failed to decode backup: %v", err)
	}

	family, err := gw.InsertFamily(ctx, backup.Family.Name, backup.Family.InviteCode)
	if err != nil {
		log.Fatalf("Failed to create family: %v", err)
	}

	profileIDs := make(map[string]string, len(backup.Profiles))
	for _, p := range backup.Profiles {
		row, err := gw.InsertProfile(ctx, gateway.NewProfile{
			FamilyID:    family.ID,
			UserID:      p.UserID,
			Name:        p.Name,
			Type:        p.Type,
			ThemeColor:  p.ThemeColor,
			AvatarURL:   p.AvatarURL,
			AvatarStyle: p.AvatarStyle,
			Status:      p.Status,
			IsAuthUser:  p.IsAuthUser,
		})
		if err != nil {
			log.Fatalf("Failed to import profile %s: %v", p.Name, err)
		}
		profileIDs[p.ID] = row.ID
	}

	buttonIDs := make(map[string]string, len(backup.Buttons))
	for _, b := range backup.Buttons {
		row, err := gw.InsertButton(ctx, gateway.NewButton{FamilyID: family.ID, Label: b.Label, Icon: b.Icon})
		if err != nil {
			log.Fatalf("Failed to import button %s: %v", b.Label, err)
		}
		buttonIDs[b.ID] = row.ID
	}

	for _, t := range backup.Tasks {
		nt := gateway.NewTask{FamilyID: family.ID, Title: t.Title}
		if t.AssignedToMemberID != nil {
			if mapped, ok := profileIDs[*t.AssignedToMemberID]; ok {
				nt.AssignedToMemberID = &mapped
			}
		}
		row, err := gw.InsertTask(ctx, nt)
		if err != nil {
			log.Fatalf("Failed to import task %q: %v", t.Title, err)
		}
		if t.IsCompleted {
			if err := gw.UpdateTaskCompleted(ctx, row.ID, true); err != nil {
				log.Fatalf("Failed to mark task %q completed: %v", t.Title, err)
			}
		}
	}

	for _, m := range backup.Messages {
		_, err := gw.InsertMessage(ctx, gateway.NewMessage{
			FamilyID:          family.ID,
			Content:           m.Content,
			CreatedByMemberID: profileIDs[m.CreatedByMemberID],
			IsPinned:          m.IsPinned,
		})
		if err != nil {
			log.Fatalf("Failed to import message: %v", err)
		}
	}

	// Oldest first so prepend ordering is preserved on the next load
	for i := len(backup.Logs) - 1; i >= 0; i-- {
		l := backup.Logs[i]
		targets := make([]string, 0, len(l.TargetMemberIDs))
		for _, id := range l.TargetMemberIDs {
			if mapped, ok := profileIDs[id]; ok {
				targets = append(targets, mapped)
			}
		}
		nl := gateway.NewLog{
			FamilyID:          family.ID,
			Type:              l.Type,
			Note:              l.Note,
			PhotoURL:          l.PhotoURL,
			TargetMemberIDs:   targets,
			CreatedByMemberID: profileIDs[l.CreatedByMemberID],
		}
		if l.CustomButtonID != nil {
			if mapped, ok := buttonIDs[*l.CustomButtonID]; ok {
				nl.CustomButtonID = &mapped
			}
		}
		if _, err := gw.InsertLog(ctx, nl); err != nil {
			log.Fatalf("Failed to import log %s: %v", l.ID, err)
		}
	}

	log.Printf("Import complete: family %s (%d profiles, %d messages, %d tasks, %d logs, %d buttons)",
		family.ID, len(backup.Profiles), len(backup.Messages), len(backup.Tasks), len(backup.Logs), len(backup.Buttons))
}

func printUsage() {
	fmt.Println("Usage: backup <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export -family <id> [-output <file>]   Export one family to a JSON file")
	fmt.Println("  import -input <file>                   Import a family from a JSON file")
}
