package doctor

const permissionHint = "Grant access in System Settings > Privacy & Security > Accessibility, then restart the host app."
