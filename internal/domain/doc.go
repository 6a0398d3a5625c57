// Package domain models the methane emissions report: the measurement record
// shown on the dashboard, its built-in defaults, and the rules that merge a
// sparse override record into a complete one.
//
// # Override Records
//
// Override records are flat JSON objects, usually read from
// sample_measurement.json next to the image assets or published to the source
// topic. Keys are the Portuguese field names used by the field teams:
//
//	unidade             facility name                     "Rio de Janeiro"
//	data_medicao        ISO-8601 instant                  "2025-04-29T10:36:00Z"
//	hora_local          free-form local time label        "10h36"
//	resolucao_m         ground resolution in meters       25
//	taxa_kgch4_h        methane rate in kgCH4/h           180
//	incerteza_pct       uncertainty in percent            5
//	estado_mar          sea state                         "Calmo"
//	plataforma          platform type                     "FPSO"
//	objetos_detectados  list of detected objects          ["Equipamentos Auxiliares"]
//	flare_ativo         flare active (boolean-coercible)  true
//	detec_pluma         plume detected                    true
//	ident_pluma         plume identified                  true
//	dir_vento_graus     wind direction, degrees (from)    270
//	vento_media_ms      average wind speed, m/s           5.2
//	vento_erro_ms       wind speed error, m/s             2.0
//	colorbar_max_ppb    colorbar upper bound, ppb         (unset)
//	passes              [{"sat","t","ang"}, ...]          three GHGSat passes
//	img_swir, img_rgb   data URI or path under base dir   (candidate files)
//
// Unknown keys are ignored. A key whose value has the wrong type keeps the
// default, with one exception: an unparseable data_medicao is displayed as the
// raw string it was given.
//
// # Boolean Tokens
//
// Boolean fields accept real booleans or the case-insensitive tokens "1",
// "true", "sim", "yes", "y" and "on". Every other value, including "não" and
// "false", resolves to false. Numbers are compared by their decimal text, so 1
// is true and 0 is false.
//
// # Local Time
//
// hora_local is not derived from data_medicao. Field teams type it by hand and
// it may disagree with the instant; both are displayed as given. The acquisition
// date label is always printed in UTC followed by the zone label configured in
// the [Profile], which is a presentation constant and not an offset.
package domain
