package exit

import "errors"

var errNoGenerator = errors.New("generador de comprobantes no configurado")
