package worker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.trai.ch/spawn/internal/core/domain"
)

const (
	dataURLPrefix = `"data:text/javascript;charset=utf-8,"`

	revokeModule  = `"URL.revokeObjectURL(import.meta.url);"`
	revokeClassic = `"(self.URL || self.webkitURL).revokeObjectURL(self.location.href);"`

	urlFactory = `export default function WorkerWrapper(options) {
  return new %s(%s, %s);
}
`

	urlModule = `export default %s;
`

	inlineWorkerFactory = `const jsContent = %s;
const blob = typeof self !== "undefined" && self.Blob && new Blob([%s, jsContent], { type: "text/javascript;charset=utf-8" });
export default function WorkerWrapper(options) {
  let objURL;
  try {
    objURL = blob && (self.URL || self.webkitURL).createObjectURL(blob);
    if (!objURL) throw "";
    const worker = new Worker(objURL, %s);
    worker.addEventListener("error", () => {
      (self.URL || self.webkitURL).revokeObjectURL(objURL);
    });
    return worker;
  } catch (e) {
    return new Worker(%s + encodeURIComponent(jsContent), %s);
  }
}
`

	inlineSharedFactory = `const jsContent = %s;
export default function WorkerWrapper(options) {
  return new SharedWorker(%s + encodeURIComponent(jsContent), %s);
}
`
)

// constructorOptions renders the options object passed to the worker constructor.
func constructorOptions(format domain.WorkerFormat) string {
	if format.Module() {
		return `{ type: "module", name: options?.name }`
	}
	return `{ name: options?.name }`
}

// URLFactory returns a module whose default export starts a worker from url.
func URLFactory(kind domain.WorkerKind, format domain.WorkerFormat, url string) string {
	return fmt.Sprintf(urlFactory, kind.Constructor(), jsString(url), constructorOptions(format))
}

// URLModule returns a module whose default export is url.
func URLModule(url string) string {
	return fmt.Sprintf(urlModule, jsString(url))
}

// InlineFactory returns a module that embeds code and starts a worker from it.
// Dedicated workers try a Blob object URL first and fall back to a data: URL.
func InlineFactory(kind domain.WorkerKind, format domain.WorkerFormat, code string) string {
	opts := constructorOptions(format)
	content := jsString(code)

	if kind == domain.KindSharedWorker {
		return fmt.Sprintf(inlineSharedFactory, content, dataURLPrefix, opts)
	}

	revoke := revokeClassic
	if format.Module() {
		revoke = revokeModule
	}
	return fmt.Sprintf(inlineWorkerFactory, content, revoke, opts, dataURLPrefix, opts)
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Strings cannot fail to encode.
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// jsStringContent returns s escaped for use inside a double-quoted literal.
func jsStringContent(s string) string {
	q := jsString(s)
	return q[1 : len(q)-1]
}
