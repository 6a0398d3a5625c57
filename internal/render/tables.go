package render

// AcquisitionRows is the acquisition block.
func AcquisitionRows(v View) []Row {
	f := v.Fields
	return []Row{
		{Label: "Data da Aquisição", Value: f[FieldMeasuredAt]},
		{Label: "Hora", Value: f[FieldLocalTime]},
		{Label: "Resolução", Value: f[FieldResolution] + " m"},
	}
}

// SWIRRows is the SWIR-derived results table. The colorbar bound row is
// shown only when set.
func SWIRRows(v View) []Row {
	f := v.Fields
	rows := []Row{
		{Label: "Detecção da Pluma de Metano", Value: f[FieldPlumeDetected]},
		{Label: "Identificação da Pluma de Metano", Value: f[FieldPlumeIdentified]},
		{Label: "Concentração de Metano (kgCH₄/hr)", Value: f[FieldRate]},
		{Label: "Incerteza (%)", Value: "±" + f[FieldUncertainty] + "%"},
	}
	if bound, ok := f[FieldColorbarMax]; ok {
		rows = append(rows, Row{Label: "Escala Máxima (ppb)", Value: bound})
	}
	return rows
}

// RGBRows is the RGB-derived results table.
func RGBRows(v View) []Row {
	f := v.Fields
	flare := "Não ⚪"
	if v.Record.FlareActive {
		flare = "Sim 🟢"
	}
	return []Row{
		{Label: "Estado do Mar", Value: f[FieldSeaState]},
		{Label: "Plataforma", Value: f[FieldPlatform]},
		{Label: "Objetos Detectados", Value: f[FieldDetectedObjects]},
		{Label: "Flare Ativo", Value: flare},
	}
}

// MeteorologyRows is the weather table.
func MeteorologyRows(v View) []Row {
	f := v.Fields
	return []Row{
		{Label: "Velocidade Média do Vento (m/s)", Value: f[FieldWindSpeedAvg] + " ±" + f[FieldWindSpeedError]},
		{Label: "Direção do Vento (deg)", Value: f[FieldWindDirection] + " (de onde sopra)"},
	}
}
