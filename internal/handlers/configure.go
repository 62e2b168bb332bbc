package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleConfigure serves the install page: the user pastes their keys and
// gets a stremio:// link with the base64 configuration segment baked in.
func (h *Handler) handleConfigure(c *gin.Context) {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Anime Today Configuration</title>
  <style>
    body {
      font-family: sans-serif;
      background-color: #1a1a2e;
      color: #eee;
      margin: 0;
      padding: 20px;
      display: flex;
      align-items: center;
      justify-content: center;
      min-height: 100vh;
    }
    .container {
      background-color: #24243e;
      border-radius: 8px;
      padding: 30px;
      max-width: 480px;
      width: 100%;
    }
    h1 { text-align: center; color: #50e3c2; }
    label { font-weight: 600; margin-top: 15px; display: block; }
    input {
      width: 100%;
      padding: 10px;
      border: 1px solid #444;
      border-radius: 4px;
      margin-top: 5px;
      font-size: 1rem;
      box-sizing: border-box;
    }
    button {
      width: 100%;
      margin-top: 25px;
      padding: 12px;
      background-color: #50e3c2;
      border: none;
      border-radius: 4px;
      font-size: 1rem;
      font-weight: 600;
      cursor: pointer;
    }
    #install { margin-top: 15px; word-break: break-all; text-align: center; }
    #install a { color: #50e3c2; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Anime Today</h1>
    <label for="rd">Real-Debrid API key</label>
    <input type="text" id="rd" placeholder="required for direct streams">
    <label for="tmdb">TMDB API key (optional)</label>
    <input type="text" id="tmdb" placeholder="improves posters and backdrops">
    <button onclick="generateLink()">Generate install link</button>
    <div id="install"></div>
  </div>
  <script>
    function generateLink() {
      var config = {};
      var rd = document.getElementById('rd').value.trim();
      var tmdb = document.getElementById('tmdb').value.trim();
      if (rd) config.rd = rd;
      if (tmdb) config.tmdb = tmdb;
      var encoded = btoa(JSON.stringify(config));
      var manifest = window.location.host + '/' + encoded + '/manifest.json';
      document.getElementById('install').innerHTML =
        '<a href="stremio://' + manifest + '">Install in Stremio</a>';
    }
  </script>
</body>
</html>`

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}
