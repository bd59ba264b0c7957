package formats

// MIME type used for formats whose output has no registered media type.
const defaultMIMEType = "application/octet-stream"

// Formats readable and writable by pandoc with the same metadata in both
// directions. HTML and friends are not here because their descriptions differ.
var common = []Descriptor{
	{Key: "bibtex", MIMEType: "application/x-bibtex", Extension: "bib", Detail: "BibTeX bibliography"},
	{Key: "biblatex", MIMEType: "application/x-bibtex", Extension: "bib", Detail: "BibLaTeX bibliography"},
	{Key: "commonmark", MIMEType: "text/markdown", Extension: "md", Detail: "CommonMark Markdown"},
	{Key: "commonmark_x", MIMEType: "text/markdown", Extension: "md", Detail: "CommonMark Markdown with extensions"},
	{Key: "csljson", MIMEType: "application/json", Extension: "json", Detail: "CSL JSON bibliography"},
	{Key: "docx", MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Extension: "docx", Detail: "Word docx"},
	{Key: "dokuwiki", MIMEType: "text/plain", Extension: "txt", Detail: "DokuWiki markup"},
	{Key: "haddock", MIMEType: "text/plain", Extension: "txt", Detail: "Haddock markup"},
	{Key: "ipynb", MIMEType: "application/x-ipynb+json", Extension: "ipynb", Detail: "Jupyter notebook"},
	{Key: "gfm", MIMEType: "text/markdown", Extension: "md", Detail: "GitHub-Flavored Markdown"},
	{Key: "jira", MIMEType: "text/plain", Extension: "txt", Detail: "Jira/Confluence wiki markup"},
	{Key: "json", MIMEType: "application/json", Extension: "json", Detail: "JSON version of native AST"},
	{Key: "latex", MIMEType: "text/x-tex", Extension: "tex", Detail: "LaTeX"},
	{Key: "man", MIMEType: "text/troff", Extension: "man", Detail: "roff man"},
	{Key: "markdown", MIMEType: "text/markdown", Extension: "md", Detail: "Pandoc's Markdown"},
	{Key: "markdown_mmd", MIMEType: "text/plain", Extension: "txt", Detail: "MultiMarkdown"},
	{Key: "markdown_phpextra", MIMEType: "text/markdown", Extension: "md", Detail: "PHP Markdown Extra"},
	{Key: "markdown_strict", MIMEType: "text/markdown", Extension: "md", Detail: "original unextended Markdown"},
	{Key: "mediawiki", MIMEType: "text/plain", Extension: "wiki", Detail: "MediaWiki markup"},
	{Key: "muse", MIMEType: "text/plain", Extension: "muse", Detail: "Muse"},
	{Key: "native", MIMEType: "text/plain", Extension: "hs", Detail: "native Haskell"},
	{Key: "odt", MIMEType: "application/vnd.oasis.opendocument.text", Extension: "odt", Detail: "OpenOffice text document"},
	{Key: "opml", MIMEType: "text/x-opml", Extension: "opml", Detail: "OPML"},
	{Key: "org", MIMEType: "text/plain", Extension: "org", Detail: "Emacs Org mode"},
	{Key: "rst", MIMEType: "text/x-rst", Extension: "rst", Detail: "reStructuredText"},
	{Key: "textile", MIMEType: "text/plain", Extension: "textile", Detail: "Textile"},
}

var inputOnly = []Descriptor{
	{Key: "creole", MIMEType: "text/plain", Extension: "txt", Detail: "Creole 1.0"},
	{Key: "csv", MIMEType: "text/csv", Extension: "csv", Detail: "CSV table"},
	{Key: "docbook", MIMEType: "application/docbook+xml", Extension: "xml", Detail: "DocBook"},
	{Key: "epub", MIMEType: "application/epub+zip", Extension: "epub", Detail: "EPUB"},
	{Key: "fb2", MIMEType: "application/x-fictionbook+xml", Extension: "fb2", Detail: "FictionBook2 e-book"},
	{Key: "html", MIMEType: "text/html", Extension: "html", Detail: "HTML"},
	{Key: "jats", MIMEType: "application/xml", Extension: "xml", Detail: "JATS XML"},
	{Key: "t2t", MIMEType: "text/plain", Extension: "t2t", Detail: "txt2tags"},
	{Key: "tikiwiki", MIMEType: "text/plain", Extension: "txt", Detail: "TikiWiki markup"},
	{Key: "twiki", MIMEType: "text/plain", Extension: "txt", Detail: "TWiki markup"},
	{Key: "vimwiki", MIMEType: "text/plain", Extension: "wiki", Detail: "Vimwiki"},
}

var outputOnly = []Descriptor{
	{Key: "asciidoc", MIMEType: "text/plain", Extension: "adoc", Detail: "AsciiDoc"},
	{Key: "asciidoctor", MIMEType: "text/plain", Extension: "adoc", Detail: "AsciiDoctor"},
	{Key: "beamer", MIMEType: "text/x-tex", Extension: "tex", Detail: "LaTeX beamer slide show"},
	{Key: "context", MIMEType: "text/x-tex", Extension: "tex", Detail: "ConTeXt"},
	{Key: "docbook", MIMEType: "application/docbook+xml", Extension: "xml", Detail: "DocBook 4"},
	{Key: "docbook4", MIMEType: "application/docbook+xml", Extension: "xml", Detail: "DocBook 4"},
	{Key: "docbook5", MIMEType: "application/docbook+xml", Extension: "xml", Detail: "DocBook 5"},
	{Key: "epub", MIMEType: "application/epub+zip", Extension: "epub", Detail: "EPUB v3 book"},
	{Key: "epub3", MIMEType: "application/epub+zip", Extension: "epub", Detail: "EPUB v3 book"},
	{Key: "epub2", MIMEType: "application/epub+zip", Extension: "epub", Detail: "EPUB v2"},
	{Key: "fb2", MIMEType: "application/x-fictionbook+xml", Extension: "fb2", Detail: "FictionBook2 e-book"},
	{Key: "html", MIMEType: "text/html", Extension: "html", Detail: "HTML, i.e. HTML5/XHTML polyglot markup"},
	{Key: "html5", MIMEType: "text/html", Extension: "html", Detail: "HTML, i.e. HTML5/XHTML polyglot markup"},
	{Key: "html4", MIMEType: "text/html", Extension: "html", Detail: "XHTML 1.0 Transitional"},
	{Key: "icml", MIMEType: "application/xml", Extension: "icml", Detail: "InDesign ICML"},
	{Key: "jats", MIMEType: "application/xml", Extension: "xml", Detail: "JATS XML, Archiving and Interchange Tag Set"},
	{Key: "jats_archiving", MIMEType: "application/xml", Extension: "xml", Detail: "JATS XML, Archiving and Interchange Tag Set"},
	{Key: "jats_articleauthoring", MIMEType: "application/xml", Extension: "xml", Detail: "JATS XML, Article Authoring Tag Set"},
	{Key: "jats_publishing", MIMEType: "application/xml", Extension: "xml", Detail: "JATS XML, Journal Publishing Tag Set"},
	{Key: "ms", MIMEType: "text/troff", Extension: "ms", Detail: "roff ms"},
	{Key: "opendocument", MIMEType: "application/xml", Extension: "xml", Detail: "OpenDocument"},
	{Key: "pdf", MIMEType: "application/pdf", Extension: "pdf", Detail: "PDF"},
	{Key: "plain", MIMEType: "text/plain", Extension: "txt", Detail: "plain text"},
	{Key: "pptx", MIMEType: "application/vnd.openxmlformats-officedocument.presentationml.presentation", Extension: "pptx", Detail: "PowerPoint slide show"},
	{Key: "rtf", MIMEType: "application/rtf", Extension: "rtf", Detail: "Rich Text Format"},
	{Key: "texinfo", MIMEType: "application/x-texinfo", Extension: "texi", Detail: "GNU Texinfo"},
	{Key: "slideous", MIMEType: "text/html", Extension: "html", Detail: "Slideous HTML and JavaScript slide show"},
	{Key: "slidy", MIMEType: "text/html", Extension: "html", Detail: "Slidy HTML and JavaScript slide show"},
	{Key: "dzslides", MIMEType: "text/html", Extension: "html", Detail: "DZSlides HTML5 + JavaScript slide show"},
	{Key: "revealjs", MIMEType: "text/html", Extension: "html", Detail: "reveal.js HTML5 + JavaScript slide show"},
	{Key: "s5", MIMEType: "text/html", Extension: "html", Detail: "S5 HTML and JavaScript slide show"},
	{Key: "tei", MIMEType: "application/tei+xml", Extension: "xml", Detail: "TEI Simple"},
	{Key: "xwiki", MIMEType: defaultMIMEType, Extension: "xwiki", Detail: "XWiki markup"},
	{Key: "zimwiki", MIMEType: "text/plain", Extension: "txt", Detail: "ZimWiki markup"},
}
