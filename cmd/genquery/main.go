package main

import (
	"flag"

	"axiapac.com/timeclock/model"
	"gorm.io/gen"
)

// genquery writes typed gorm/gen query helpers for the timeclock models.
func main() {
	out := flag.String("out", "./store/query", "output directory")
	flag.Parse()

	g := gen.NewGenerator(gen.Config{
		OutPath: *out,
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface, // generate mode
	})

	g.ApplyBasic(
		model.Employee{},
		model.Shift{},
		model.ScanEvent{},
		model.WorkRecord{},
		model.MealCredit{},
	)

	// Generate the code
	g.Execute()
}
