package steps

// CSS selectors of the IcoMoon app.
const (
	SelImportConfigButton = ".file.unit"
	SelImportConfigInput  = `.file.unit input[type="file"]`
	SelOverlayConfirm     = ".overlay button.mrl"
	SelMenuButton         = "h1 button .icon-menu"
	SelIconInput          = `.menuList2.menuList3 .file input[type="file"]`
	SelNewIcon            = "#set0 .miBox:not(.mi-selected)"
	SelSelectAllButton    = `button[ng-click="selectAllNone($index, true)"]`
	SelGenerateLink       = `a[href="#/select/font"]`
	SelGlyphSet           = "#glyphSet0"
	SelDownloadButton     = ".btn4"
)
