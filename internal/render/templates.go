package render

// sharedTemplate holds the fragments every layout assembles. Layouts include
// it after their own body.
const sharedTemplate = `
{{define "head"}}<head><meta charset="utf-8"/>
<meta name="viewport" content="width=device-width,initial-scale=1"/>
<meta name="generated-at" content="{{slot "generated_at"}}"/>
<title>{{slot "app_name"}} — {{slot "report_title"}}</title>
<style>
:root{
  --panel-w:540px; --gap:20px;
  --primary:#00E3A5; --bg:#0b1221; --card:#10182b;
  --text:#FFFFFF; --muted:#9fb0c9; --border:rgba(255,255,255,.10);
}
*{box-sizing:border-box}
body{margin:0;height:100vh;width:100vw;background:var(--bg);color:var(--text);
  font-family:-apple-system,BlinkMacSystemFont,Segoe UI,Roboto,Inter,Helvetica Neue,Arial,Noto Sans,sans-serif}
.stage{min-height:100vh;width:100vw;position:relative}
.visual-wrap{
  position:absolute; top:var(--gap); bottom:100px; left:var(--gap);
  right:calc(var(--panel-w) + var(--gap)*2);
  border:1px solid var(--border); border-radius:12px; overflow:hidden;
  box-shadow:0 18px 44px rgba(0,0,0,.35); background:#0f172a;
  display:flex; flex-direction:column;
}
.v-header{
  background:#1f497d; color:#e8f0ff; padding:8px 12px; font-weight:800; font-size:1.5rem;
  border-bottom:1px solid rgba(255,255,255,.2); position:relative;
}
.v-body{position:relative; flex:1; background:#0b1327; overflow:hidden}
.v-body .img-holder{position:absolute; inset:0; display:flex; align-items:center; justify-content:center}
.v-body img{max-width:100%; max-height:100%; object-fit:contain; background:#0b1327}
.v-body.split{display:grid; grid-template-columns:1fr 1fr; gap:2px; background:var(--border)}
.v-body.split .half{position:relative; background:#0b1327}
.v-body.split .half-label{position:absolute; left:10px; top:8px; z-index:1; color:#cfe7ff; font-weight:800; font-size:.85rem}
.placeholder{display:flex; align-items:center; justify-content:center; width:60%; height:60%;
  border:2px dashed rgba(255,255,255,.25); border-radius:12px; color:#9fb0d4; font-weight:800}
.v-footer{padding:8px 10px; color:#b9c6e6; font-size:.82rem; background:#0e172b; border-top:1px solid var(--border)}
.vh-actions{position:absolute; right:10px; top:6px; display:flex; gap:8px}
.pill{
  height:30px; padding:0 12px; border-radius:999px; border:1px solid rgba(255,255,255,.25);
  background:rgba(0,0,0,.28); color:#fff; font-weight:800; font-size:.82rem; cursor:pointer;
  backdrop-filter:blur(3px) saturate(130%);
}
.timeline{
  position:absolute; left:var(--gap); right:calc(var(--panel-w) + var(--gap)*2);
  bottom:var(--gap); height:84px; border:1px solid var(--border); border-radius:10px;
  background:#0f1a2e; display:flex; flex-direction:column; justify-content:space-between;
  padding:8px 10px; box-shadow:0 10px 24px rgba(0,0,0,.35);
}
.timeline .label{color:#9fb0d4; font-weight:800}
.ticks{display:flex; gap:20px; align-items:center; overflow:auto; color:#cfe7ff; font-size:.85rem}
.tick{min-width:210px; padding:6px 10px; border-radius:9px; border:1px solid rgba(255,255,255,.18); background:rgba(255,255,255,.04)}
.tick b{color:#e6eefc}
.side-panel{
  position:absolute; top:var(--gap); right:var(--gap); bottom:var(--gap);
  width:var(--panel-w); background:var(--card); border:1px solid var(--border);
  border-radius:18px; box-shadow:0 18px 44px rgba(0,0,0,.45);
  padding:14px; display:flex; flex-direction:column; gap:12px; overflow:auto;
  backdrop-filter:saturate(140%) blur(6px);
}
.header{display:grid; grid-template-columns:1fr auto; gap:10px; align-items:center}
.brand{display:flex; gap:12px; align-items:center}
.brand .logo{width:82px; height:82px; border-radius:14px; background:#fff; display:flex; align-items:center; justify-content:center; border:1px solid var(--border)}
.brand .logo img{width:82px; height:82px; object-fit:contain}
.brand .logo .glyph{font-weight:900; color:#000}
.brand .txt .name{font-weight:900; letter-spacing:.2px}
.brand .txt .sub{font-size:.86rem; color:#9fb0d4}
.badge{justify-self:end; background:rgba(0,227,165,.12); color:#00E3A5; border:1px solid rgba(0,227,165,.25);
  padding:6px 10px; border-radius:999px; font-weight:700; font-size:.85rem; white-space:nowrap}
.hr{height:1px; background:var(--border); margin:6px 0 10px 0}
.block{border:1px solid var(--border); border-radius:12px; overflow:hidden; box-shadow:0 10px 26px rgba(0,0,0,.4)}
.block .title{background:#0e1629; padding:10px; color:#fff; font-weight:900; text-align:center; font-size:1.5rem}
.block .body{padding:10px}
table.minimal{width:100%; border-collapse:collapse}
table.minimal th, table.minimal td{border-bottom:1px solid var(--border); padding:9px 6px; text-align:left; font-size:1.5rem}
table.minimal th{color:#9fb0d4; font-weight:700}
.footer{margin-top:auto; display:flex; justify-content:space-between; align-items:center; color:#a9b8df; font-size:.85rem}
.slide-frame{position:relative; width:100vw; height:56.25vw; max-height:100vh; max-width:177.78vh; margin:0 auto; overflow:hidden}
.slide-frame .stage{min-height:0; height:100%; width:100%}
.stage.panel-only{display:flex; justify-content:center}
.stage.panel-only .side-panel{position:relative; top:auto; right:auto; bottom:auto; margin:var(--gap) auto; min-height:calc(100vh - var(--gap)*2)}
@media print{ .vh-actions{display:none} }
</style>
</head>{{end}}

{{define "image"}}{{if .Present}}<img src="{{.Src}}" alt="{{.Alt}}"/>{{else}}<div class="placeholder" data-placeholder="{{.Role}}">Figura indisponível</div>{{end}}{{end}}

{{define "figure_header"}}<div class="v-header">
      {{slot "figure_title"}}
      <div class="vh-actions">
        <button id="btnExport8K" class="pill" title="Exportar PNG 8K do dashboard">PNG 8K</button>
        <button id="btnExport8KFig" class="pill" title="Exportar PNG 8K apenas da figura">PNG 8K (Figura)</button>
        <button id="btnPdfA4" class="pill" title="Exportar PDF A4 (paisagem)">PDF A4</button>
        <button id="btnPdfA3" class="pill" title="Exportar PDF A3 (paisagem)">PDF A3</button>
      </div>
    </div>{{end}}

{{define "figure_footer"}}<div class="v-footer">{{slot "disclaimer"}}</div>{{end}}

{{define "timeline"}}<div class="timeline">
    <div class="label">Linha do tempo (passagens)</div>
    <div class="ticks" id="tl">{{range slot "passes"}}<div class="tick"><b>{{or .SatelliteID "-"}}</b><br><small>{{or .TimestampLabel "-"}} • {{or .IncidenceAngle "-"}}</small></div>{{end}}</div>
  </div>{{end}}

{{define "table"}}<table class="minimal">{{range .}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>{{end}}</table>{{end}}

{{define "panel"}}<div class="side-panel" id="panel">
    <div class="header">
      <div class="brand">
        {{- $logo := slot "logo"}}
        <div class="logo">{{if $logo.Present}}<img src="{{$logo.Src}}" alt="{{$logo.Alt}}"/>{{else}}<div class="glyph" data-placeholder="logo">DA</div>{{end}}</div>
        <div class="txt">
          <div class="name">{{slot "report_title"}}</div>
          <div class="sub">Unidade: {{slot "unit"}}</div>
        </div>
      </div>
      <div class="badge">{{slot "badge"}}</div>
    </div>
    <div class="hr"></div>

    <div class="block"><div class="title">Aquisição</div>
      <div class="body">{{template "table" slot "acquisition_rows"}}</div></div>

    <div class="block"><div class="title">Resultados derivados do satélite SWIR</div>
      <div class="body">{{template "table" slot "swir_rows"}}</div></div>

    <div class="block"><div class="title">Resultados derivados do satélite RGB</div>
      <div class="body">{{template "table" slot "rgb_rows"}}</div></div>

    <div class="block"><div class="title">Dados Meteorológicos — GEOS</div>
      <div class="body">{{template "table" slot "met_rows"}}</div></div>

    <div class="footer"><div>© {{slot "year"}} {{slot "copyright"}}</div><div></div></div>
  </div>{{end}}

{{define "scripts"}}<script type="application/json" id="passes-data">{{slot "passes_json"}}</script>
<script>
(function(){
  function byId(id){ return document.getElementById(id); }
  function on(id, fn){ var el = byId(id); if (el) { el.addEventListener('click', fn); } }

  function stamp(){
    return new Date().toISOString().slice(0, 19).split(':').join('-').split('T').join('-');
  }

  function exportPNG8K(el, prefix){
    if (!el) { return; }
    if (typeof window.html2canvas !== 'function') {
      window.alert('Exportação PNG disponível pelo serviço de relatórios.');
      return;
    }
    var rect = el.getBoundingClientRect();
    var base = Math.max(1, Math.ceil(rect.width), Math.ceil(rect.height));
    var dpr = Math.max(1, window.devicePixelRatio || 1);
    var scale = Math.min(6, (7680 / base) * dpr);
    window.html2canvas(el, {backgroundColor: null, useCORS: true, logging: false, scale: scale}).then(function(canvas){
      canvas.toBlob(function(blob){
        var a = document.createElement('a');
        a.href = URL.createObjectURL(blob);
        a.download = prefix + '_8k_' + stamp() + '_' + canvas.width + 'x' + canvas.height + '.png';
        document.body.appendChild(a); a.click(); document.body.removeChild(a);
        URL.revokeObjectURL(a.href);
      }, 'image/png');
    });
  }

  function printAsPDF(el, size){
    if (!el) { return; }
    var w = window.open('', '_blank', 'width=1200,height=800');
    if (!w) { return; }
    var css = '@page { size: ' + size + ' landscape; margin: 10mm; }' +
      '@media print { html, body { background:#fff !important; } body { -webkit-print-color-adjust: exact; print-color-adjust: exact; } }' +
      '#root { display:flex; justify-content:center; } #root > .stage-print { width: 100%; } * { overflow: visible !important; }';
    w.document.open();
    w.document.write('<!doctype html><html><head><meta charset="utf-8"/>' + document.head.innerHTML + '<style>' + css + '</style></head><body><div id="root"><div class="stage-print"></div></div></body></html>');
    w.document.close();
    var clone = el.cloneNode(true);
    clone.style.background = '#ffffff';
    clone.querySelectorAll('.visual-wrap, .side-panel, .timeline').forEach(function(n){ n.style.boxShadow = 'none'; });
    w.document.querySelector('.stage-print').appendChild(clone);
    setTimeout(function(){ w.focus(); w.print(); setTimeout(function(){ w.close(); }, 300); }, 250);
  }

  on('btnExport8K', function(){ exportPNG8K(byId('stage'), 'dap-atlas_app'); });
  on('btnExport8KFig', function(){ exportPNG8K(byId('visual'), 'dap-atlas_fig'); });
  on('btnPdfA4', function(){ printAsPDF(byId('stage'), 'A4'); });
  on('btnPdfA3', function(){ printAsPDF(byId('stage'), 'A3'); });
})();
</script>{{end}}
`

const singleTemplate = `<!doctype html>
<html>{{template "head"}}
<body class="layout-single">
<div class="stage" id="stage">
  <div class="visual-wrap" id="visual">
    {{template "figure_header"}}
    <div class="v-body" id="vbody">
      <div class="img-holder" id="imgHolder">{{template "image" slot "figure"}}</div>
    </div>
    {{template "figure_footer"}}
  </div>
  {{template "timeline"}}
  {{template "panel"}}
</div>
{{template "scripts"}}
</body></html>
`

const splitTemplate = `<!doctype html>
<html>{{template "head"}}
<body class="layout-split">
<div class="stage" id="stage">
  <div class="visual-wrap" id="visual">
    {{template "figure_header"}}
    <div class="v-body split" id="vbody">
      <div class="half"><div class="half-label">SWIR</div><div class="img-holder">{{template "image" slot "figure"}}</div></div>
      <div class="half"><div class="half-label">RGB</div><div class="img-holder">{{template "image" slot "figure_rgb"}}</div></div>
    </div>
    {{template "figure_footer"}}
  </div>
  {{template "timeline"}}
  {{template "panel"}}
</div>
{{template "scripts"}}
</body></html>
`

// compositeTemplate shows one pre-composed 50/50 image; the builder fills the
// figure slot from the composite candidates.
const compositeTemplate = `<!doctype html>
<html>{{template "head"}}
<body class="layout-composite">
<div class="stage" id="stage">
  <div class="visual-wrap" id="visual">
    {{template "figure_header"}}
    <div class="v-body" id="vbody">
      <div class="img-holder" id="imgHolder">{{template "image" slot "figure"}}</div>
    </div>
    {{template "figure_footer"}}
  </div>
  {{template "timeline"}}
  {{template "panel"}}
</div>
{{template "scripts"}}
</body></html>
`

const slideTemplate = `<!doctype html>
<html>{{template "head"}}
<body class="layout-slide">
<div class="slide-frame">
<div class="stage" id="stage">
  <div class="visual-wrap" id="visual">
    {{template "figure_header"}}
    <div class="v-body" id="vbody">
      <div class="img-holder" id="imgHolder">{{template "image" slot "figure"}}</div>
    </div>
    {{template "figure_footer"}}
  </div>
  {{template "timeline"}}
  {{template "panel"}}
</div>
</div>
{{template "scripts"}}
</body></html>
`

const sidebarTemplate = `<!doctype html>
<html>{{template "head"}}
<body class="layout-sidebar">
<div class="stage panel-only" id="stage">
  {{template "panel"}}
</div>
{{template "scripts"}}
</body></html>
`
