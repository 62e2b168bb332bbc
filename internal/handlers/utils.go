package handlers

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/david325345/animetoday/internal/config"
)

// stripJSONExtension removes .json extension from a parameter if present
func stripJSONExtension(c *gin.Context, paramName string) {
	value := c.Param(paramName)
	if strings.HasSuffix(value, ".json") {
		for i, param := range c.Params {
			if param.Key == paramName {
				c.Params[i].Value = strings.TrimSuffix(value, ".json")
				break
			}
		}
	}
}

// promoteExtraParams rewrites path-based extras (e.g. "skip=100.json") into
// query parameters so handlers can read them via c.Query.
func promoteExtraParams(c *gin.Context) {
	extra := strings.TrimPrefix(c.Param("extra"), "/")
	extra = strings.TrimSuffix(extra, ".json")
	if extra == "" {
		return
	}

	for _, param := range strings.Split(extra, "&") {
		parts := strings.SplitN(param, "=", 2)
		if len(parts) == 2 {
			c.Request.URL.RawQuery = c.Request.URL.RawQuery + "&" + parts[0] + "=" + parts[1]
		}
	}
	c.Request.URL.RawQuery = strings.TrimPrefix(c.Request.URL.RawQuery, "&")
}

// decodeUserConfig parses the base64 JSON configuration path segment the
// player embeds in every resource URL. Malformed input yields nil, which
// means "no per-request configuration".
func decodeUserConfig(encoded string) *config.UserConfig {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var user config.UserConfig
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}
