package rawmap

const Version = "0.3.0"
