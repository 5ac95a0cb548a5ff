// Package auth talks to the backend's main_proxy.php endpoint: it logs users
// in and submits scores. Every failure comes back as an apperr.Error so the
// launcher can show a short message without knowing transport details.
package auth
