package view

import (
	"html/template"
	"strings"
)

type socialIconAsset struct {
	Key   string
	Label string
	SVG   string
}

var (
	socialIconDefinitions = []socialIconAsset{
		{Key: "facebook_url", Label: "Facebook", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M24 12.073C24 5.405 18.627 0 12 0S0 5.405 0 12.073C0 18.1 4.388 23.094 10.125 24v-8.437H7.078v-3.49h3.047V9.413c0-3.026 1.792-4.697 4.533-4.697 1.312 0 2.686.236 2.686.236v2.971H15.83c-1.491 0-1.956.93-1.956 1.886v2.264h3.328l-.532 3.49h-2.796V24C19.612 23.094 24 18.1 24 12.073Z"/></svg>`},
		{Key: "instagram_url", Label: "Instagram", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><rect x="2.25" y="2.25" width="19.5" height="19.5" rx="5.25"/><circle cx="12" cy="12" r="4.25"/><circle cx="17.6" cy="6.4" r=".9" fill="currentColor"/></svg>`},
		{Key: "linkedin_url", Label: "LinkedIn", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M20.447 20.452h-3.554v-5.569c0-1.328-.027-3.037-1.852-3.037-1.853 0-2.136 1.445-2.136 2.939v5.667H9.351V9h3.414v1.561h.046c.477-.9 1.637-1.85 3.37-1.85 3.601 0 4.267 2.37 4.267 5.455v6.286ZM5.337 7.433a2.062 2.062 0 1 1 0-4.125 2.062 2.062 0 0 1 0 4.125ZM7.119 20.452H3.555V9h3.564v11.452ZM22.225 0H1.771C.792 0 0 .774 0 1.729v20.542C0 23.227.792 24 1.771 24h20.451C23.2 24 24 23.227 24 22.271V1.729C24 .774 23.2 0 22.222 0h.003Z"/></svg>`},
		{Key: "whatsapp", Label: "WhatsApp", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M17.472 14.382c-.297-.149-1.758-.867-2.03-.967-.273-.099-.471-.148-.67.15-.197.297-.767.966-.94 1.164-.173.199-.347.223-.644.075-.297-.15-1.255-.463-2.39-1.475-.883-.788-1.48-1.761-1.653-2.059-.173-.297-.018-.458.13-.606.134-.133.298-.347.446-.52.149-.174.198-.298.298-.497.099-.198.05-.371-.025-.52-.075-.149-.669-1.612-.916-2.207-.242-.579-.487-.5-.669-.51a12.8 12.8 0 0 0-.57-.01c-.198 0-.52.074-.792.372-.272.297-1.04 1.016-1.04 2.479 0 1.462 1.065 2.875 1.213 3.074.149.198 2.096 3.2 5.077 4.487.709.306 1.262.489 1.694.625.712.227 1.36.195 1.871.118.571-.085 1.758-.719 2.006-1.413.248-.694.248-1.289.173-1.413-.074-.124-.272-.198-.57-.347ZM12.05 21.785h-.004a9.87 9.87 0 0 1-5.031-1.378l-.361-.214-3.741.982.998-3.648-.235-.374a9.86 9.86 0 0 1-1.51-5.26c.001-5.45 4.436-9.884 9.888-9.884 2.64 0 5.122 1.03 6.988 2.898a9.825 9.825 0 0 1 2.893 6.994c-.003 5.45-4.437 9.884-9.885 9.884Zm8.413-18.297A11.815 11.815 0 0 0 12.05 0C5.495 0 .16 5.335.157 11.892c0 2.096.547 4.142 1.588 5.945L.057 24l6.305-1.654a11.882 11.882 0 0 0 5.683 1.448h.005c6.554 0 11.89-5.335 11.893-11.893a11.821 11.821 0 0 0-3.48-8.413Z"/></svg>`},
		{Key: "phone", Label: "Téléphone", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="M2.25 6.75c0 8.284 6.716 15 15 15h2.25a2.25 2.25 0 0 0 2.25-2.25v-1.372c0-.516-.351-.966-.852-1.091l-4.423-1.106c-.44-.11-.902.055-1.173.417l-.97 1.293c-.282.376-.769.542-1.21.38a12.035 12.035 0 0 1-7.143-7.143c-.162-.441.004-.928.38-1.21l1.293-.97c.363-.271.527-.734.417-1.173L6.963 3.102a1.125 1.125 0 0 0-1.091-.852H4.5A2.25 2.25 0 0 0 2.25 4.5v2.25Z"/></svg>`},
		{Key: "email", Label: "Email", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M21.75 6.75v10.5a2.25 2.25 0 0 1-2.25 2.25h-15A2.25 2.25 0 0 1 2.25 17.25V6.75M21.75 6.75A2.25 2.25 0 0 0 19.5 4.5h-15A2.25 2.25 0 0 0 2.25 6.75v.243c0 .781.405 1.506 1.071 1.916l7.5 4.615a2.25 2.25 0 0 0 2.157 0l7.5-4.615a2.25 2.25 0 0 0 1.072-1.916V6.75"/></svg>`},
		{Key: "booking", Label: "Rendez-vous", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M12 21c4.193 0 7.716-2.867 8.716-6.747M12 21c-4.193 0-7.716-2.867-8.716-6.747M12 21c2.485 0 4.5-4.03 4.5-9s-2.015-9-4.5-9m0 18c-2.485 0-4.5-4.03-4.5-9s2.015-9 4.5-9m0-0c3.365 0 6.299 1.847 7.843 4.582M12 3c-3.365 0-6.299 1.847-7.843 4.582m15.686 0c.737 1.305 1.157 2.812 1.157 4.418 0 .778-.099 1.533-.284 2.253m-.873 4.836C18.133 15.685 15.162 16.5 12 16.5s-6.134-.815-8.716-2.247m0 0A8.948 8.948 0 0 1 3 12c0-1.605.42-3.112 1.157-4.417"/></svg>`},
	}
	defaultSocialIcon = socialIconAsset{Key: "default", Label: "Lien", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M17.982 18.725C16.612 16.918 14.442 15.75 12 15.75s-4.612 1.168-5.982 2.975M17.982 18.725A8.97 8.97 0 0 0 21 12c0-4.971-4.03-9-9-9s-9 4.029-9 9a8.97 8.97 0 0 0 3.018 6.725M17.982 18.725C16.392 20.14 14.296 21 12 21s-4.392-.86-5.982-2.275M15 9.75a3 3 0 1 1-6 0 3 3 0 0 1 6 0Z"/></svg>`}
	socialIconLookup  = func() map[string]socialIconAsset {
		lookup := make(map[string]socialIconAsset, len(socialIconDefinitions)+1)
		for _, icon := range socialIconDefinitions {
			lookup[icon.Key] = icon
		}
		lookup[defaultSocialIcon.Key] = defaultSocialIcon
		return lookup
	}()
)

// SocialIconSVG resolves the inline SVG for a social or contact key, falling back to the default icon.
func SocialIconSVG(key string) template.HTML {
	trimmed := strings.ToLower(strings.TrimSpace(key))
	if icon, ok := socialIconLookup[trimmed]; ok {
		return template.HTML(icon.SVG)
	}
	return template.HTML(defaultSocialIcon.SVG)
}

// SocialIconLabel returns the display label for a key.
func SocialIconLabel(key string) string {
	trimmed := strings.ToLower(strings.TrimSpace(key))
	if icon, ok := socialIconLookup[trimmed]; ok {
		return icon.Label
	}
	return defaultSocialIcon.Label
}
