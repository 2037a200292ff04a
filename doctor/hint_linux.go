package doctor

const permissionHint = "Fix with: sudo chmod 660 /dev/uinput && sudo chgrp input /dev/uinput (then re-login)"
