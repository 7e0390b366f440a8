package build

import (
	"fmt"
	"strings"

	"pcbanai/core/internal/domain"
)

// psuHeadroomFactor is the caution threshold: a build drawing more than this
// share of the PSU's rated capacity gets a warning even though it still fits.
const psuHeadroomFactor = 0.85

// Issue is one compatibility finding. Issues are data returned for display,
// never Go errors.
type Issue struct {
	Type             string   `json:"type"`
	Message          string   `json:"message"`
	LocalizedMessage string   `json:"localizedMessage,omitempty"`
	Slots            []string `json:"components"`
}

// Report is the full verdict for a selection. IsCompatible is true exactly
// when no blocking error was found; warnings are advisory.
type Report struct {
	IsCompatible bool    `json:"isCompatible"`
	Errors       []Issue `json:"errors"`
	Warnings     []Issue `json:"warnings"`
}

// Check evaluates the fixed rule set against the current selection. Rules
// only fire when all their participating slots are populated; unknown data
// downgrades to a warning instead of silently passing or hard-failing.
// Stateless: run fresh on every selection change.
func Check(s *Selection) Report {
	report := Report{
		Errors:   []Issue{},
		Warnings: []Issue{},
	}

	checkSocket(s, &report)
	checkMemoryType(s, &report)
	checkFormFactor(s, &report)
	checkPowerBudget(s, &report)

	report.IsCompatible = len(report.Errors) == 0
	return report
}

func checkSocket(s *Selection, report *Report) {
	cpu := s.Component(domain.CategoryCPU)
	motherboard := s.Component(domain.CategoryMotherboard)
	if cpu == nil || motherboard == nil {
		return
	}

	if cpu.Socket == nil || motherboard.Socket == nil {
		report.Warnings = append(report.Warnings, Issue{
			Type:    "socket_unknown",
			Message: "Socket information for CPU or motherboard is missing; cannot guarantee compatibility.",
			Slots:   []string{"cpu", "motherboard"},
		})
		return
	}

	cpuSocket := strings.TrimSpace(*cpu.Socket)
	mbSocket := strings.TrimSpace(*motherboard.Socket)
	if cpuSocket != mbSocket {
		report.Errors = append(report.Errors, Issue{
			Type:             "socket_mismatch",
			Message:          fmt.Sprintf("CPU socket %s incompatible with motherboard socket %s", cpuSocket, mbSocket),
			LocalizedMessage: fmt.Sprintf("সিপিইউ সকেট %s মাদারবোর্ড সকেট %s এর সাথে সামঞ্জস্যপূর্ণ নয়", cpuSocket, mbSocket),
			Slots:            []string{"cpu", "motherboard"},
		})
	}
}

func checkMemoryType(s *Selection, report *Report) {
	sticks := s.Components(domain.CategoryRAM)
	motherboard := s.Component(domain.CategoryMotherboard)
	if len(sticks) == 0 || motherboard == nil || motherboard.MemoryType == nil {
		return
	}

	mbType := *motherboard.MemoryType
	for _, stick := range sticks {
		if stick.MemoryType == nil || *stick.MemoryType == mbType {
			continue
		}
		report.Errors = append(report.Errors, Issue{
			Type:             "memory_type_mismatch",
			Message:          fmt.Sprintf("RAM type %s incompatible with motherboard memory type %s", *stick.MemoryType, mbType),
			LocalizedMessage: fmt.Sprintf("র্যামের ধরন %s মাদারবোর্ডের মেমরি টাইপ %s এর সাথে সামঞ্জস্যপূর্ণ নয়", *stick.MemoryType, mbType),
			Slots:            []string{"ram", "motherboard"},
		})
	}
}

func checkFormFactor(s *Selection, report *Report) {
	enclosure := s.Component(domain.CategoryCase)
	motherboard := s.Component(domain.CategoryMotherboard)
	if enclosure == nil || motherboard == nil {
		return
	}
	if len(enclosure.FormFactors) == 0 || motherboard.FormFactor == nil {
		return
	}

	for _, supported := range enclosure.FormFactors {
		if supported == *motherboard.FormFactor {
			return
		}
	}

	report.Errors = append(report.Errors, Issue{
		Type:             "form_factor_mismatch",
		Message:          fmt.Sprintf("Motherboard form factor %s may not fit the selected case", *motherboard.FormFactor),
		LocalizedMessage: "মাদারবোর্ডের ফর্ম ফ্যাক্টর কেস দ্বারা সমর্থিত নয়",
		Slots:            []string{"case", "motherboard"},
	})
}

func checkPowerBudget(s *Selection, report *Report) {
	required := TotalWattage(s)
	psu := s.Component(domain.CategoryPSU)

	if psu == nil {
		if required > 0 {
			report.Warnings = append(report.Warnings, Issue{
				Type:    "psu_missing",
				Message: fmt.Sprintf("No PSU selected for an estimated draw of %dW", required),
				Slots:   []string{"psu"},
			})
		}
		return
	}

	rated := psu.RatedWattage()
	if rated == 0 {
		return
	}

	if required > rated {
		report.Errors = append(report.Errors, Issue{
			Type:             "insufficient_power",
			Message:          fmt.Sprintf("PSU capacity insufficient. Required: %dW, Available: %dW", required, rated),
			LocalizedMessage: fmt.Sprintf("পিএসইউ অপর্যাপ্ত। প্রয়োজন: %dW, উপলব্ধ: %dW", required, rated),
			Slots:            []string{"psu"},
		})
		return
	}

	if float64(required) > float64(rated)*psuHeadroomFactor {
		report.Warnings = append(report.Warnings, Issue{
			Type:    "psu_headroom",
			Message: fmt.Sprintf("Build draws %dW, close to the PSU's %dW limit", required, rated),
			Slots:   []string{"psu"},
		})
	}
}
