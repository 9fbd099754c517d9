package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func runSync(apiURL, userID, kind, token string, out io.Writer) error {
	payload := map[string]interface{}{
		"userId":   userID,
		"syncKind": kind,
	}
	if token != "" {
		payload["token"] = token
	}
	body, _ := json.Marshal(payload)
	resp, err := http.Post(apiURL+"/api/sync", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err = io.Copy(out, resp.Body)
	return err
}

func runSaves(apiURL, userID, source string, out io.Writer) error {
	u := fmt.Sprintf("%s/api/users/%s/saves", apiURL, url.PathEscape(userID))
	if source != "" {
		u += "?source=" + url.QueryEscape(source)
	}
	resp, err := http.Get(u)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err = io.Copy(out, resp.Body)
	return err
}
