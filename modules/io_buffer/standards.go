package io_buffer

import "strings"

// IOStandards are the accepted io_standard values.
var IOStandards = []string{
	"DEFAULT",
	"LVCMOS_12", "LVCMOS_15", "LVCMOS_18_HP", "LVCMOS_18_HR", "LVCMOS_25", "LVCMOS_33", "LVTTL",
	"HSTL_I_12", "HSTL_II_12", "HSTL_I_15", "HSTL_II_15", "HSUL_12",
	"PCI66", "PCIX133", "POD_12",
	"SSTL_I_15", "SSTL_II_15", "SSTL_I_18_HP", "SSTL_II_18_HP", "SSTL_I_18_HR", "SSTL_II_18_HR",
	"SSTL_I_25", "SSTL_II_25", "SSTL_I_33", "SSTL_II_33",
	"BLVDS_DIFF", "LVDS_HP_DIFF", "LVDS_HR_DIFF", "LVPECL_25_DIFF", "LVPECL_33_DIFF",
	"HSTL_12_DIFF", "HSTL_15_DIFF", "HSUL_12_DIFF", "MIPI_DIFF", "POD_12_DIFF",
	"RSDS_DIFF", "SLVS_DIFF", "SSTL_15_DIFF", "SSTL_18_HP_DIFF", "SSTL_18_HR_DIFF",
}

var (
	weakKeepers    = []string{"NONE", "PULLUP", "PULLDOWN"}
	slewRates      = []string{"SLOW", "FAST"}
	driveStrengths = []int{2, 4, 6, 8, 12, 16}
)

func isDifferential(standard string) bool {
	return strings.HasSuffix(standard, "_DIFF")
}
