package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
)

type configurePage struct {
	Name      string
	Version   string
	Providers []providerOption
}

type providerOption struct {
	ID   string
	Name string
}

var configureTemplate = template.Must(template.New("configure").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Configuración {{.Name}}</title>
  <style>
    :root {
      --primary-color: #e2574a;
      --secondary-color: #f2a65a;
      --background-color: #f7f9fc;
      --text-color: #333;
    }
    * { box-sizing: border-box; }
    body {
      font-family: sans-serif;
      background-color: var(--background-color);
      color: var(--text-color);
      margin: 0;
      padding: 20px;
      display: flex;
      align-items: center;
      justify-content: center;
      min-height: 100vh;
    }
    .container {
      background-color: #fff;
      border-radius: 8px;
      padding: 30px;
      max-width: 500px;
      width: 100%;
      box-shadow: 0 4px 12px rgba(0, 0, 0, 0.1);
    }
    h1 { text-align: center; margin-bottom: 20px; color: var(--primary-color); }
    label { display: block; margin-top: 12px; }
    button {
      background-color: var(--primary-color);
      color: #fff;
      border: none;
      padding: 12px 20px;
      border-radius: 4px;
      font-size: 1rem;
      cursor: pointer;
      margin-top: 25px;
      width: 100%;
    }
    button:hover { background-color: var(--secondary-color); }
    .result {
      margin-top: 25px;
      background-color: #f1f3f5;
      border-radius: 4px;
      padding: 15px;
      word-break: break-all;
    }
  </style>
  <script>
    function encodeConfig(config) {
      return btoa(JSON.stringify(config)).replace(/\+/g, '-').replace(/\//g, '_').replace(/=+$/, '');
    }

    function decodeConfig(encoded) {
      const padded = encoded.replace(/-/g, '+').replace(/_/g, '/');
      return JSON.parse(atob(padded + '==='.slice((padded.length + 3) % 4)));
    }

    function getConfigFromURL() {
      const parts = window.location.pathname.split('/').filter(p => p);
      if (parts.length < 2 || parts[parts.length - 1] !== "configure") {
        return;
      }
      try {
        const enabled = decodeConfig(parts[parts.length - 2]).enabledProviders || [];
        if (enabled.length === 0) {
          return;
        }
        document.querySelectorAll('input[name=provider]').forEach(box => {
          box.checked = enabled.includes(box.value);
        });
      } catch (error) {
        console.error("Error decoding configuration:", error);
      }
    }

    function generateConfig() {
      const enabled = Array.from(document.querySelectorAll('input[name=provider]:checked')).map(box => box.value);
      const encoded = encodeConfig({ enabledProviders: enabled });
      const manifest = window.location.origin + '/' + encoded + '/manifest.json';

      document.getElementById('result').innerHTML =
        '<p><strong>Manifest:</strong></p>' +
        '<p><a href="' + manifest + '">' + manifest + '</a></p>' +
        '<p><a href="' + manifest.replace(/^https?:/, 'stremio:') + '">Instalar en Stremio</a></p>';
    }

    window.onload = getConfigFromURL;
  </script>
</head>
<body>
  <div class="container">
    <h1>{{.Name}} <small>{{.Version}}</small></h1>
    <p>Proveedores de streams habilitados:</p>
    {{range .Providers}}
    <label><input type="checkbox" name="provider" value="{{.ID}}" checked> {{.Name}}</label>
    {{end}}
    <button onclick="generateConfig()">Generar enlace</button>
    <div id="result" class="result"></div>
  </div>
</body>
</html>`))

// handleConfigure serves the configuration page. A configuration in the URL
// pre-selects its providers client side.
func (h *Handler) handleConfigure(c *gin.Context) {
	page := configurePage{Name: constants.AddonName, Version: constants.AddonVersion}
	for _, p := range h.services.Registry.Providers() {
		page.Providers = append(page.Providers, providerOption{ID: p.ID, Name: p.DisplayName})
	}

	var buf bytes.Buffer
	if err := configureTemplate.Execute(&buf, page); err != nil {
		h.services.Logger.Errorf("[ConfigHandler] failed to render page: %v", err)
		c.String(http.StatusInternalServerError, "failed to render configuration page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
